package views

import (
	"context"
	"io"

	"github.com/theossalmeida/front-great-people/log"
)

const (
	MessageSuccess = "success"
	MessageError   = "error"

	msgNoFile   = "Por favor, selecione um arquivo válido"
	msgUploaded = "Arquivo salvo com sucesso! Seu arquivo será processado em até 2 minutos"
	msgBusy     = "Um envio já está em andamento, aguarde"
)

// UploadView holds the upload page state. The selected file itself is only
// kept for the duration of the request that carries it.
type UploadView struct {
	Message     string `json:"message,omitempty"`
	MessageType string `json:"message_type,omitempty"`
	Busy        bool   `json:"-"`

	fileName string
	file     io.Reader
}

func NewUploadView() *UploadView {
	return &UploadView{}
}

// Select stores the chosen file. An empty name or nil reader clears it.
func (v *UploadView) Select(name string, file io.Reader) {
	if name == "" || file == nil {
		v.fileName, v.file = "", nil
		return
	}
	v.fileName, v.file = name, file
}

func (v *UploadView) Selected() string {
	return v.fileName
}

// Submit forwards the selected file to the backend. Processing happens
// asynchronously on the backend; nothing here waits for it.
func (v *UploadView) Submit(ctx context.Context, api API) error {
	if v.file == nil {
		err := &ValidationError{msgNoFile}
		v.Message, v.MessageType = err.Msg, MessageError
		return err
	}

	v.Busy = true
	defer func() { v.Busy = false }()

	err := api.UploadFile(ctx, v.fileName, v.file)
	if err != nil {
		log.Debugf("upload.submit: %s", err)
		v.Message, v.MessageType = "Erro ao salvar arquivo: "+err.Error(), MessageError
		return err
	}

	v.Message, v.MessageType = msgUploaded, MessageSuccess
	v.Select("", nil)
	return nil
}

// Reject reports a submit refused because another one is still running.
func (v *UploadView) Reject() {
	v.Message, v.MessageType = msgBusy, MessageError
}

func (v *UploadView) ClearMessage() {
	v.Message, v.MessageType = "", ""
}

func (v *UploadView) ButtonLabel() string {
	if v.Busy {
		return "Enviando..."
	}
	return "Enviar Arquivo"
}
