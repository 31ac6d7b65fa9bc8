package views

import "github.com/theossalmeida/front-great-people/model"

// State is everything one browser session sees. It is owned by the session
// and handed to the handlers of the request being served.
type State struct {
	Records *RecordView `json:"records"`
	Upload  *UploadView `json:"upload"`
}

func NewState() *State {
	return &State{
		Records: NewRecordView(),
		Upload:  NewUploadView(),
	}
}

// Normalize repairs state decoded from an older or partial row.
func (s *State) Normalize() {
	if s.Records == nil {
		s.Records = NewRecordView()
	}
	if s.Upload == nil {
		s.Upload = NewUploadView()
	}
	r := s.Records
	if !validPageSize(r.PageSize) {
		r.PageSize = DefaultPageSize
	}
	if r.Records == nil {
		r.Records = []model.Pesquisa{}
	}
	r.Filtered = Filter(r.Records, r.Search)
	r.Page = ClampPage(r.Page, r.TotalPages())
	r.Loading = false
}
