package emailsvc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"testing"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redland/registro/core"
)

type deliveryData struct {
	ReportTitle string
	SenderName  string
	Period      string
	FileName    string
	SchoolName  string
}

func testConfig() *core.Config {
	return &core.Config{
		AppName:    "Registro Escolar",
		SchoolName: "Redland School",
		Email: core.EmailConfig{
			SendgridApiKey:   "SG.test",
			DefaultFromEmail: "Registro Escolar <noreply@redland.cl>",
		},
	}
}

func deliveryMessage(t *testing.T) *core.EmailMessage {
	t.Helper()
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: "Ana Pérez", Address: "ana@redland.cl"}},
		Subject:      "Reporte de Actividades",
		TemplateName: "report_delivery",
		TemplateData: deliveryData{
			ReportTitle: "Registro Escolar 2026 - Reporte de Actividades",
			SenderName:  "Juan Soto",
			Period:      "Lunes 2 de Marzo de 2026 - Viernes 6 de Marzo de 2026",
			FileName:    "Report_Activities_ALL_2026-03-02_2026-03-06.pdf",
			SchoolName:  "Redland School",
		},
	}
	require.NoError(t, msg.Attach(strings.NewReader("%PDF-1.3 fake"), "Report_Activities_ALL_2026-03-02_2026-03-06.pdf", "application/pdf"))
	return msg
}

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	svc := NewConsoleServiceMock(testConfig())

	svc.SendMessages(
		deliveryMessage(t),
		&core.EmailMessage{Subject: "no recipients", BodyStr: "ignored"},
		&core.EmailMessage{To: []mail.Address{{Address: "x@redland.cl"}}, Subject: "no content"},
	)

	require.Empty(t, svc.Errs)
	sent := svc.Messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].TextContent, "Juan Soto te ha enviado el reporte")
	assert.Contains(t, sent[0].HTMLContent, "<strong>Juan Soto</strong>")
	assert.Contains(t, sent[0].HTMLContent, "Redland School - Registro Escolar Web")
}

func TestConsoleService_Compose(t *testing.T) {
	svc := NewConsoleServiceMock(testConfig())
	out, err := svc.sendMessage(deliveryMessage(t))
	require.NoError(t, err)

	tests := []struct {
		name string
		want string
	}{
		{"from", `From: "Registro Escolar" <noreply@redland.cl>`},
		{"subject prefix", "Subject: [Registro Escolar] Reporte de Actividades"},
		{"mixed", "Content-Type: multipart/mixed; boundary="},
		{"alternative", "multipart/alternative; boundary="},
		{"pdf part", "Content-Type: application/pdf"},
		{"disposition", `attachment; filename="Report_Activities_ALL_2026-03-02_2026-03-06.pdf"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestConsoleService_UnknownTemplateData(t *testing.T) {
	svc := NewConsoleServiceMock(testConfig())
	svc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: "ana@redland.cl"}},
		TemplateName: "report_delivery",
		TemplateData: map[string]string{"ReportTitle": "x"},
	})
	assert.Len(t, svc.Errs, 1)
	assert.Empty(t, svc.Messages())
}

func TestSendgridService_Prepare(t *testing.T) {
	svc := NewSendgridService(testConfig(), nil).(*sendgridService)
	msg := deliveryMessage(t)
	require.NoError(t, msg.Render())

	var body struct {
		From struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			Subject string `json:"subject"`
			To      []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
		Content []struct {
			Type string `json:"type"`
		} `json:"content"`
		Attachments []struct {
			Type     string `json:"type"`
			Filename string `json:"filename"`
		} `json:"attachments"`
	}
	require.NoError(t, json.NewDecoder(bytes.NewReader(sgBody(svc, *msg))).Decode(&body))

	assert.Equal(t, "noreply@redland.cl", body.From.Email)
	require.Len(t, body.Personalizations, 1)
	assert.Equal(t, "[Registro Escolar] Reporte de Actividades", body.Personalizations[0].Subject)
	assert.Equal(t, "ana@redland.cl", body.Personalizations[0].To[0].Email)
	require.Len(t, body.Content, 2)
	assert.Equal(t, "text/plain", body.Content[0].Type)
	require.Len(t, body.Attachments, 1)
	assert.Equal(t, "application/pdf", body.Attachments[0].Type)
}

func TestSendgridService_Send(t *testing.T) {
	orig := sendRequest
	defer func() { sendRequest = orig }()

	reqs := make(chan rest.Request, 1)
	sendRequest = func(req rest.Request) (*rest.Response, error) {
		reqs <- req
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}

	svc := NewSendgridService(testConfig(), nil).(*sendgridService)
	msg := deliveryMessage(t)
	require.NoError(t, msg.Render())
	svc.send(*msg)

	req := <-reqs
	assert.Equal(t, rest.Method(http.MethodPost), req.Method)
	assert.Equal(t, host+endpoint, req.BaseURL)
	assert.Equal(t, "Bearer SG.test", req.Headers["Authorization"])
}

func sgBody(svc *sendgridService, msg core.EmailMessage) []byte {
	return sgmail.GetRequestBody(svc.prepare(msg))
}
