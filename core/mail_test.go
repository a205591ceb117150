package core

import (
	"io/fs"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesFS_IncludesBaseLayouts(t *testing.T) {
	tests := []string{
		"templates/email/_base.txt",
		"templates/email/_base.gohtml",
		"templates/email/report_delivery.txt",
		"templates/email/report_delivery.gohtml",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := fs.Stat(templatesFS, name)
			assert.NoError(t, err)
		})
	}
}

func TestEmailMessage_Render(t *testing.T) {
	data := struct {
		ReportTitle, SenderName, Period, FileName, SchoolName string
	}{
		ReportTitle: "Registro Escolar 2026 - Reporte de Evaluaciones",
		SenderName:  "Juan Soto",
		Period:      "Lunes 2 de Marzo de 2026 - Viernes 6 de Marzo de 2026",
		FileName:    "Report_Evaluations_Middle_2026-03-02_2026-03-06.pdf",
		SchoolName:  "Redland School",
	}

	tests := []struct {
		name     string
		msg      EmailMessage
		wantText []string
		wantHTML []string
	}{
		{
			name: "report delivery",
			msg: EmailMessage{
				To:           []mail.Address{{Address: "ana@redland.cl"}},
				TemplateName: "report_delivery",
				TemplateData: data,
			},
			wantText: []string{"Juan Soto te ha enviado el reporte", data.FileName, "Redland School - Registro Escolar Web"},
			wantHTML: []string{"<strong>Juan Soto</strong>", "Redland School - Registro Escolar Web"},
		},
		{
			name:     "plain body",
			msg:      EmailMessage{BodyStr: "hola"},
			wantText: []string{"hola"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := tc.msg
			require.NoError(t, msg.Render())
			for _, want := range tc.wantText {
				assert.Contains(t, msg.TextContent, want)
			}
			for _, want := range tc.wantHTML {
				assert.Contains(t, msg.HTMLContent, want)
			}
			if len(tc.wantHTML) == 0 {
				assert.Empty(t, strings.TrimSpace(msg.HTMLContent))
			}
		})
	}
}
