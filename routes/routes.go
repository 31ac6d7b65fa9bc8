package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/theossalmeida/front-great-people/app"
	"github.com/theossalmeida/front-great-people/httpx"
	"github.com/theossalmeida/front-great-people/routes/middlewares"
)

func Wire(app app.App, guard *middlewares.UploadGuard) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, httpx.RequestLogger, middleware.Recoverer)

	root.Get("/healthz", Healthz())
	root.Get("/api/average", Average())

	root.Group(func(r chi.Router) {
		r.Use(middlewares.Sessions(app.Sessions))

		// record view
		r.Get("/", RecordsPage(app))
		r.Post("/reload", Reload(app))
		r.Get("/search", Search(app))
		r.Post("/search/clear", ClearSearch(app))
		r.Post("/page/prev", PrevPage(app))
		r.Post("/page/next", NextPage(app))
		r.Post("/page/size", PageSize(app))
		r.Post("/error/clear", ClearError(app))

		// dialogs
		r.Post("/dialog/create", OpenCreate(app))
		r.Post("/dialog/edit/{id}", OpenEdit(app))
		r.Post("/dialog/delete/{id}", OpenDelete(app))
		r.Post("/dialog/close", CloseDialog(app))
		r.Post("/dialog/scores", UpdateScores(app))
		r.Post("/records", SubmitRecord(app))
		r.Post("/records/delete", ConfirmDelete(app))

		// upload view
		r.Get("/upload", UploadPage(app, guard))
		r.Post("/upload", SubmitUpload(app, guard))
	})

	return root
}
