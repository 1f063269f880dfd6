package model

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email"    form:"email"    validate:"required,max=254"`
	Password string `json:"password" form:"password" validate:"required,max=256"`
}

// SignupInput carries the signup form. ConfirmPassword never leaves the web tier.
type SignupInput struct {
	Name            string `json:"name"     form:"name"            validate:"required,max=100"`
	Email           string `json:"email"    form:"email"           validate:"required,email,max=254"`
	Password        string `json:"password" form:"password"        validate:"required,max=256"`
	ConfirmPassword string `json:"-"        form:"confirmPassword" validate:"required,eqfield=Password"`
}

// PostInput carries the create/edit post form.
type PostInput struct {
	Title       string `json:"title"       form:"title"       validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"required,max=10000"`
	Topic       ID     `json:"topic"       form:"topic"       validate:"required"`
}

// TopicInput carries the create/edit topic form.
type TopicInput struct {
	Name string `json:"name" form:"name" validate:"required,max=80"`
}
