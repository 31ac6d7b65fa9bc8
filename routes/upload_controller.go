package routes

import (
	"errors"
	"net/http"

	"github.com/theossalmeida/front-great-people/app"
	"github.com/theossalmeida/front-great-people/httpx"
	"github.com/theossalmeida/front-great-people/log"
	"github.com/theossalmeida/front-great-people/routes/middlewares"
)

const maxUploadMemory = 32 << 20

func UploadPage(app app.App, guard *middlewares.UploadGuard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(r)
		v := s.State.Upload
		v.Busy = guard.Busy(s.ID)

		renderPage(w, r, uploadTmpl, "render.upload", uploadPage{View: v})
	}
}

func SubmitUpload(app app.App, guard *middlewares.UploadGuard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(r)
		v := s.State.Upload

		err := r.ParseMultipartForm(maxUploadMemory)
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_multipart")
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close()
			v.Select(header.Filename, file)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			v.Select("", nil)
		default:
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.form_file")
			return
		}

		if !guard.Acquire(s.ID) {
			v.Reject()
			httpx.SeeOther(w, r, "/upload")
			return
		}
		defer guard.Release(s.ID)

		err = v.Submit(r.Context(), app.API)
		if err != nil {
			log.Debugf("upload.submit: %s", err)
		}
		httpx.SeeOther(w, r, "/upload")
	}
}
