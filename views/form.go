package views

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ajg/form"
	"github.com/hashicorp/go-multierror"
	"github.com/theossalmeida/front-great-people/model"
)

const (
	MinScore = 0
	MaxScore = 100
)

var ErrNoDialog = errors.New("no matching dialog is open")

// ValidationError is a problem caught before any request reaches the backend.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// RecordForm is what the create and edit dialogs post.
type RecordForm struct {
	NomePesquisa string `form:"nome_pesquisa"`
	Nota1        string `form:"nota_1"`
	Nota2        string `form:"nota_2"`
}

func DecodeRecordForm(body io.Reader) (f RecordForm, err error) {
	d := form.NewDecoder(body)
	d.IgnoreUnknownKeys(true)
	err = d.Decode(&f)
	return
}

func parseScore(label, raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, &ValidationError{label + " é obrigatória"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ValidationError{label + " deve ser um número"}
	}
	if v < MinScore || v > MaxScore {
		return 0, &ValidationError{fmt.Sprintf("%s deve estar entre %d e %d", label, MinScore, MaxScore)}
	}
	return v, nil
}

func (f RecordForm) Scores() (nota1, nota2 float64, err error) {
	var errs *multierror.Error
	nota1, e := parseScore("Nota 1", f.Nota1)
	errs = multierror.Append(errs, e)
	nota2, e = parseScore("Nota 2", f.Nota2)
	errs = multierror.Append(errs, e)
	err = errs.ErrorOrNil()
	return
}

// Record applies the form on top of base. On validation failure the returned
// record still carries whatever could be parsed, so the dialog can show it.
func (f RecordForm) Record(base model.Pesquisa) (model.Pesquisa, error) {
	var errs *multierror.Error

	record := base
	record.NomePesquisa = strings.TrimSpace(f.NomePesquisa)
	if record.NomePesquisa == "" {
		errs = multierror.Append(errs, &ValidationError{"Código da pesquisa é obrigatório"})
	}

	if nota1, err := parseScore("Nota 1", f.Nota1); err != nil {
		errs = multierror.Append(errs, err)
	} else {
		record.Nota1 = nota1
	}
	if nota2, err := parseScore("Nota 2", f.Nota2); err != nil {
		errs = multierror.Append(errs, err)
	} else {
		record.Nota2 = nota2
	}
	record.MediaPesquisa = model.ComputeAverage(record.Nota1, record.Nota2)

	return record, errs.ErrorOrNil()
}

func errorLines(err error) []string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		lines := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			lines = append(lines, e.Error())
		}
		return lines
	}
	return []string{err.Error()}
}
