package views

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/theossalmeida/front-great-people/log"
	"github.com/theossalmeida/front-great-people/model"
)

// API is what the views need from the backend client.
type API interface {
	ListRecords(ctx context.Context) ([]model.Pesquisa, error)
	UpsertRecord(ctx context.Context, record model.Pesquisa) error
	DeleteRecord(ctx context.Context, id model.RecordID) error
	UploadFile(ctx context.Context, filename string, file io.Reader) error
}

var PageSizes = []int{5, 10}

const DefaultPageSize = 5

type DialogKind string

const (
	DialogNone   DialogKind = ""
	DialogCreate DialogKind = "create"
	DialogEdit   DialogKind = "edit"
	DialogDelete DialogKind = "delete"
)

type Dialog struct {
	Kind   DialogKind     `json:"kind,omitempty"`
	Draft  model.Pesquisa `json:"draft"`
	Target model.Pesquisa `json:"target"`
	Errors []string       `json:"errors,omitempty"`
}

func (d Dialog) Open() bool {
	return d.Kind != DialogNone
}

// DeletePrompt is the confirmation sentence shown before deleting.
func (d Dialog) DeletePrompt() string {
	return "Tem certeza que deseja excluir a pesquisa " + d.Target.NomePesquisa + "? Esta ação não poderá ser desfeita."
}

// RecordView owns everything the records page shows. One lives in each
// session; nothing else holds a reference to the record list.
type RecordView struct {
	Records  []model.Pesquisa `json:"records"`
	Filtered []model.Pesquisa `json:"filtered"`
	Search   string           `json:"search"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Loading  bool             `json:"loading"`
	Loaded   bool             `json:"loaded"`
	Error    string           `json:"error,omitempty"`
	Dialog   Dialog           `json:"dialog"`

	// Settled is set by the records actions so the redirect that follows
	// them renders without fetching the list again.
	Settled bool `json:"settled,omitempty"`
}

func NewRecordView() *RecordView {
	return &RecordView{
		Records:  []model.Pesquisa{},
		Filtered: []model.Pesquisa{},
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Filter keeps the records whose nome_pesquisa contains term, ignoring case.
func Filter(records []model.Pesquisa, term string) []model.Pesquisa {
	out := make([]model.Pesquisa, 0, len(records))
	needle := strings.ToLower(term)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.NomePesquisa), needle) {
			out = append(out, r)
		}
	}
	return out
}

func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / float64(size)))
}

// ClampPage keeps page within [1, totalPages], or 1 when there are no pages.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

func PageSlice(records []model.Pesquisa, page, size int) []model.Pesquisa {
	if size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start < 0 || start >= len(records) {
		return []model.Pesquisa{}
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

func (v *RecordView) TotalPages() int {
	return TotalPages(len(v.Filtered), v.PageSize)
}

func (v *RecordView) CurrentItems() []model.Pesquisa {
	return PageSlice(v.Filtered, v.Page, v.PageSize)
}

func (v *RecordView) HasPrev() bool {
	return v.Page > 1
}

func (v *RecordView) HasNext() bool {
	total := v.TotalPages()
	return total > 0 && v.Page < total
}

func (v *RecordView) Load(ctx context.Context, api API) {
	v.Loading = true
	records, err := api.ListRecords(ctx)
	v.Loading = false
	if err != nil {
		log.Debugf("records.load: %s", err)
		v.Error = "Erro ao buscar dados: " + err.Error()
		return
	}
	if records == nil {
		records = []model.Pesquisa{}
	}
	v.Records = records
	v.Loaded = true
	v.refilter()
}

// MarkSettled flags the next render as the end of a records action.
func (v *RecordView) MarkSettled() {
	v.Settled = true
}

// Visit is an arrival on the records page. Every arrival fetches the list
// again, except the redirect that ends a records action.
func (v *RecordView) Visit(ctx context.Context, api API) {
	if v.Settled {
		v.Settled = false
		return
	}
	v.Load(ctx, api)
}

func (v *RecordView) SetSearch(term string) {
	v.Search = term
	v.refilter()
}

func (v *RecordView) ClearSearch() {
	v.SetSearch("")
}

func (v *RecordView) refilter() {
	v.Filtered = Filter(v.Records, v.Search)
	v.Page = 1
}

func (v *RecordView) PrevPage() {
	v.Page = ClampPage(v.Page-1, v.TotalPages())
}

func (v *RecordView) NextPage() {
	v.Page = ClampPage(v.Page+1, v.TotalPages())
}

// SetPageSize accepts only the sizes offered in the pager and goes back to
// the first page.
func (v *RecordView) SetPageSize(size int) bool {
	if !validPageSize(size) {
		return false
	}
	v.PageSize = size
	v.Page = 1
	return true
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

func (v *RecordView) ClearError() {
	v.Error = ""
}

func (v *RecordView) CloseDialog() {
	v.Dialog = Dialog{}
}

func (v *RecordView) find(id model.RecordID) (model.Pesquisa, bool) {
	for _, r := range v.Records {
		if r.ID.Same(id) {
			return r, true
		}
	}
	return model.Pesquisa{}, false
}

func (v *RecordView) OpenCreate(now time.Time, layout string) {
	draft := model.Pesquisa{CreatedDate: model.CreationStamp(now, layout)}
	draft.SetScores(0, 0)
	v.Dialog = Dialog{Kind: DialogCreate, Draft: draft}
}

func (v *RecordView) OpenEdit(id model.RecordID) bool {
	record, ok := v.find(id)
	if !ok {
		return false
	}
	v.Dialog = Dialog{Kind: DialogEdit, Draft: record}
	return true
}

func (v *RecordView) OpenDelete(id model.RecordID) bool {
	record, ok := v.find(id)
	if !ok {
		return false
	}
	v.Dialog = Dialog{Kind: DialogDelete, Target: record}
	return true
}

// UpdateScores copies the form into the open create/edit draft and
// recomputes the media right away. Invalid scores keep the previous ones.
func (v *RecordView) UpdateScores(form RecordForm) {
	if v.Dialog.Kind != DialogCreate && v.Dialog.Kind != DialogEdit {
		return
	}
	v.Dialog.Draft.NomePesquisa = form.NomePesquisa
	nota1, nota2, err := form.Scores()
	if err != nil {
		v.Dialog.Errors = errorLines(err)
		return
	}
	v.Dialog.Errors = nil
	v.Dialog.Draft.SetScores(nota1, nota2)
}

// SubmitCreate posts a new record. A failed submit raises the error banner
// but keeps the dialog and the typed values so the user can try again.
func (v *RecordView) SubmitCreate(ctx context.Context, api API, form RecordForm, now time.Time, layout string) error {
	if v.Dialog.Kind != DialogCreate {
		return ErrNoDialog
	}
	record, err := form.Record(v.Dialog.Draft)
	if err != nil {
		v.Dialog.Draft = record
		v.Dialog.Errors = errorLines(err)
		return err
	}
	record.ID = ""
	record.SetScores(record.Nota1, record.Nota2)
	record.CreatedDate = model.CreationStamp(now, layout)
	v.Dialog.Draft = record

	if err := api.UpsertRecord(ctx, record); err != nil {
		log.Debugf("records.create: %s", err)
		v.Dialog.Errors = nil
		v.Error = "Erro ao salvar: " + err.Error()
		return err
	}

	v.CloseDialog()
	v.Load(ctx, api)
	return nil
}

func (v *RecordView) SubmitEdit(ctx context.Context, api API, form RecordForm) error {
	if v.Dialog.Kind != DialogEdit {
		return ErrNoDialog
	}
	record, err := form.Record(v.Dialog.Draft)
	if err != nil {
		v.Dialog.Draft = record
		v.Dialog.Errors = errorLines(err)
		return err
	}
	record.SetScores(record.Nota1, record.Nota2)
	v.Dialog.Draft = record

	if err := api.UpsertRecord(ctx, record); err != nil {
		log.Debugf("records.edit: %s", err)
		v.Dialog.Errors = nil
		v.Error = "Erro ao editar: " + err.Error()
		return err
	}

	v.CloseDialog()
	v.Load(ctx, api)
	return nil
}

func (v *RecordView) ConfirmDelete(ctx context.Context, api API) error {
	if v.Dialog.Kind != DialogDelete {
		return ErrNoDialog
	}
	if err := api.DeleteRecord(ctx, v.Dialog.Target.ID); err != nil {
		log.Debugf("records.delete: %s", err)
		v.Error = "Erro ao deletar: " + err.Error()
		return err
	}

	v.CloseDialog()
	v.Load(ctx, api)
	return nil
}
