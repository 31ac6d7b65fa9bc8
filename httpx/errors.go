package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
	"github.com/theossalmeida/front-great-people/log"
)

func fields(r *http.Request, code string) log.Fields {
	return log.Fields{
		"code":   code,
		"req_id": middleware.GetReqID(r.Context()),
	}
}

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.WithFields(fields(r, code)).Error(err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log a debug message, and send an HTTP response with status 404 and default text
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any) {
	log.WithFields(fields(r, code)).Debugf("not found (%v)", id)
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string) {
	log.WithFields(fields(r, code)).Log(logrus.Level(level), http.StatusText(status))
	http.Error(w, http.StatusText(status), status)
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.WithFields(fields(r, code)).Log(logrus.Level(level), errMsg)
	http.Error(w, errMsg, status)
}

// SeeOther ends a form post by sending the browser back to a page.
func SeeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
