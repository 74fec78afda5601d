package middleware

import (
	"net/http"

	"github.com/mcoot/sportfinder/internal/latch"
)

// DuplicateSubmission is shown when a form is posted again while the first post is in flight
const DuplicateSubmission = "This form is already being submitted."

// AcquireForm takes the submission latch for this browser's copy of the named form.
// When ok is false the caller must not contact the API and should answer 409.
func AcquireForm(l *latch.Latch, r *http.Request, form string) (release func(), ok bool) {
	return l.TryAcquire(string(GetSessionKey(r.Context())) + ":" + form)
}
