// Package logging contains data structures useful to implement logging
// across htdate in a Docker friendly way.
package logging

import (
	golog "log"
	"net/http"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/gorilla/handlers"
)

// Logger logs messages on the standard error in a structured JSON
// format, to simplify processing. Emitting logs on the standard error is
// consistent with the standard practices when dockerising a service.
var Logger = log.Logger{
	Handler: json.New(os.Stderr),
	Level:   log.DebugLevel,
}

// MakeAccessLogHandler wraps |handler| with another handler that logs
// access to each resource on the standard output. Access logs keep their
// traditional format rather than JSON because that format predates us
// and every log processor understands it.
func MakeAccessLogHandler(handler http.Handler) http.Handler {
	return handlers.LoggingHandler(golog.Writer(), handler)
}
