package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/http/validation"
)

// FormParser parses form data from an HTTP request and returns the parsed data
// along with any field-level validation errors.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormSubmitter performs the create or update. id is "" in create mode.
type FormSubmitter[T any] func(ctx context.Context, id string, data T) error

// FormRenderer re-renders the form template with the given data.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	W        http.ResponseWriter
	R        *http.Request
	Mode     FormMode
	Parser   FormParser[T]
	Submit   FormSubmitter[T]
	Renderer FormRenderer
	// Success redirect URL
	SuccessURL string
	// Optional: flash shown on the page behind SuccessURL
	SuccessFlash string
	PageMeta     PageMeta
	// Optional: additional data to pass to template on error
	ExtraData map[string]any
	// Optional: function to extract ID from request (defaults to r.PathValue("id"))
	GetID func(r *http.Request) string
	// Optional: status for re-rendered forms (defaults to 200 for HTMX compatibility)
	ErrorStatus int
}

// HandleForm processes a create or edit submission: parse, validate, submit,
// then redirect on success or re-render the form with errors. Validation
// failures never reach Submit, so no backend request is made for them.
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if opts.Parser == nil || opts.Submit == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}

	id, ok := checkFormID(opts)
	if !ok {
		return
	}

	data, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.renderFormError(fieldErrors, validation.Summarize(fieldErrors), data)
		return
	}

	if err := opts.Submit(opts.R.Context(), id, data); err != nil {
		handleFormServiceError(opts, err, data)
		return
	}

	if opts.SuccessFlash != "" {
		SetFlash(opts.W, FlashSuccess, opts.SuccessFlash)
	}
	redirect(opts.W, opts.R, opts.SuccessURL)
}

// checkFormID returns the path ID in edit mode and "" in create mode.
func checkFormID[T any](opts FormHandlerOpts[T]) (string, bool) {
	switch opts.Mode {
	case FormModeCreate:
		return "", true
	case FormModeEdit:
	default:
		http.Error(opts.W, "invalid form mode", http.StatusBadRequest)
		return "", false
	}

	id := getFormID(opts)
	if id == "" {
		http.NotFound(opts.W, opts.R)
		return "", false
	}
	return id, true
}

func getFormID[T any](opts FormHandlerOpts[T]) string {
	if opts.GetID != nil {
		return opts.GetID(opts.R)
	}
	return strings.TrimSpace(opts.R.PathValue("id"))
}

// handleFormServiceError maps a submit error onto the re-rendered form. Field
// errors from the backend land next to their input; everything else becomes
// the form's general message.
func handleFormServiceError[T any](opts FormHandlerOpts[T], err error, data T) {
	if errors.Is(err, context.Canceled) || apperrors.GetCode(err) == apperrors.ErrCodeCanceled {
		http.Error(opts.W, "request canceled", http.StatusRequestTimeout)
		return
	}

	if field := apperrors.GetField(err); field != "" {
		opts.renderFormError(map[string]string{field: apperrors.UserMessage(err)}, "", data)
		return
	}

	opts.renderFormError(nil, apperrors.UserMessage(err), data)
}

// renderFormError renders the form with errors and preserves form data.
func (fh FormHandlerOpts[T]) renderFormError(fieldErrors map[string]string, generalError string, data T) {
	if fh.ErrorStatus != 0 {
		fh.W.Header().Set("Content-Type", "text/html; charset=utf-8")
		fh.W.WriteHeader(fh.ErrorStatus)
	}

	templateData := NewTemplateData(fh.R, fh.PageMeta).
		WithFieldErrors(fieldErrors).
		With("Mode", fh.Mode)

	if generalError != "" {
		templateData.WithError(generalError)
	} else if len(fieldErrors) > 0 {
		templateData.WithError(errMsgFixBelow)
	}

	for k, v := range fh.ExtraData {
		templateData.With(k, v)
	}

	// FormData last so it wins over ExtraData.
	templateData.With("FormData", data)

	fh.Renderer(fh.W, fh.R, templateData.Build())
}
