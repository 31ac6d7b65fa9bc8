package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/theossalmeida/front-great-people/app"
	"github.com/theossalmeida/front-great-people/httpx"
	"github.com/theossalmeida/front-great-people/log"
	"github.com/theossalmeida/front-great-people/model"
	"github.com/theossalmeida/front-great-people/views"
)

func RecordsPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := session(r).State.Records
		v.Visit(r.Context(), app.API)

		renderPage(w, r, recordsTmpl, "render.records", recordsPage{
			View:      v,
			PageSizes: views.PageSizes,
		})
	}
}

// backToRecords ends a records action on the records page, which then shows
// the state the action left.
func backToRecords(w http.ResponseWriter, r *http.Request) {
	session(r).State.Records.MarkSettled()
	httpx.SeeOther(w, r, "/")
}

func Reload(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session(r).State.Records.Load(r.Context(), app.API)
		backToRecords(w, r)
	}
}

func Search(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session(r).State.Records.SetSearch(r.URL.Query().Get("q"))
		backToRecords(w, r)
	}
}

func ClearSearch(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session(r).State.Records.ClearSearch()
		backToRecords(w, r)
	}
}

func PrevPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session(r).State.Records.PrevPage()
		backToRecords(w, r)
	}
}

func NextPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session(r).State.Records.NextPage()
		backToRecords(w, r)
	}
}

func PageSize(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_form")
			return
		}

		size, err := strconv.Atoi(r.PostForm.Get("page_size"))
		if err != nil || !session(r).State.Records.SetPageSize(size) {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.page_size", "invalid page size %q", r.PostForm.Get("page_size"))
			return
		}
		backToRecords(w, r)
	}
}

// ClearError is the "Voltar" action of the error banner.
func ClearError(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session(r).State.Records.ClearError()
		backToRecords(w, r)
	}
}

func OpenCreate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session(r).State.Records.OpenCreate(app.Now(), app.DateLayout)
		backToRecords(w, r)
	}
}

func OpenEdit(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.RecordID(chi.URLParam(r, "id"))
		if !session(r).State.Records.OpenEdit(id) {
			httpx.LogNotFound(w, r, "dialog.edit", id)
			return
		}
		backToRecords(w, r)
	}
}

func OpenDelete(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.RecordID(chi.URLParam(r, "id"))
		if !session(r).State.Records.OpenDelete(id) {
			httpx.LogNotFound(w, r, "dialog.delete", id)
			return
		}
		backToRecords(w, r)
	}
}

func CloseDialog(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session(r).State.Records.CloseDialog()
		backToRecords(w, r)
	}
}

func UpdateScores(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := views.DecodeRecordForm(r.Body)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		session(r).State.Records.UpdateScores(form)
		backToRecords(w, r)
	}
}

// SubmitRecord saves the open create or edit dialog. Backend and validation
// failures are kept in the view state and shown on the next render.
func SubmitRecord(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := views.DecodeRecordForm(r.Body)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		v := session(r).State.Records
		switch v.Dialog.Kind {
		case views.DialogCreate:
			err = v.SubmitCreate(r.Context(), app.API, form, app.Now(), app.DateLayout)
		case views.DialogEdit:
			err = v.SubmitEdit(r.Context(), app.API, form)
		default:
			err = views.ErrNoDialog
		}
		if errors.Is(err, views.ErrNoDialog) {
			httpx.LogStatus(w, r, http.StatusConflict, log.DebugLevel, "records.submit.no_dialog")
			return
		}
		if err != nil {
			log.Debugf("records.submit: %s", err)
		}
		backToRecords(w, r)
	}
}

func ConfirmDelete(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := session(r).State.Records.ConfirmDelete(r.Context(), app.API)
		if errors.Is(err, views.ErrNoDialog) {
			httpx.LogStatus(w, r, http.StatusConflict, log.DebugLevel, "records.delete.no_dialog")
			return
		}
		backToRecords(w, r)
	}
}
