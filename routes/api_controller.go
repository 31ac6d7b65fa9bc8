package routes

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/theossalmeida/front-great-people/model"
	"github.com/theossalmeida/front-great-people/views"
)

// Average lets the dialogs refresh the computed media while scores are typed.
func Average() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		form := views.RecordForm{Nota1: q.Get("nota_1"), Nota2: q.Get("nota_2")}
		nota1, nota2, err := form.Scores()
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]any{
				"error": err.Error(),
			})
			return
		}

		media := model.ComputeAverage(nota1, nota2)
		render.JSON(w, r, map[string]any{
			"media_pesquisa": media,
			"display":        model.FormatAverage(media),
		})
	}
}

func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"status": "ok",
		})
	}
}
