package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/redland/registro/core"
	"github.com/redland/registro/core/report"
)

const (
	headerPages    = "X-Report-Pages"
	headerWarnings = "X-Report-Warnings"

	deliveryTemplate = "report_delivery"
)

type (
	EmailReportRequest struct {
		report.Request
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success  string           `json:"success"`
		FileName string           `json:"file_name,omitempty"`
		Warnings []report.Warning `json:"warnings,omitempty"`
	}

	deliveryData struct {
		ReportTitle string
		SenderName  string
		Period      string
		FileName    string
		SchoolName  string
	}
)

type reportApi struct {
	conf     *core.Config
	svc      ReportGenerator
	mailSvc  core.EmailService
	validate *validator.Validate
	jwt      *jwtAuth
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, api *reportApi) {
	rg := g.Group("/reports", jwt)
	rg.GET("", api.download)
	rg.POST("/email", api.email)
}

// Handlers

func (api *reportApi) download(ctx echo.Context) error {
	var req report.Request
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to report.Request")
	}
	if err := api.validate.Struct(req); err != nil {
		return err
	}
	usr, err := api.jwt.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	res, err := api.svc.Generate(ctx.Request().Context(), req, usr)
	if err != nil {
		return errors.Wrap(err, "generating report")
	}

	h := ctx.Response().Header()
	h.Set(headerPages, strconv.Itoa(res.Pages))
	h.Set(headerWarnings, strconv.Itoa(len(res.Warnings)))
	if !strings.HasPrefix(res.ContentType, echo.MIMETextHTML) {
		h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
	}
	return ctx.Blob(http.StatusOK, res.ContentType, res.Content)
}

// email renders the report as PDF and sends it as an attachment.
func (api *reportApi) email(ctx echo.Context) error {
	var data EmailReportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EmailReportRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	usr, err := api.jwt.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	req := data.Request
	req.Format = string(report.FormatPDF)
	res, err := api.svc.Generate(ctx.Request().Context(), req, usr)
	if err != nil {
		return errors.Wrap(err, "generating report")
	}

	rng, err := report.ParseDateRange(req.From, req.To)
	if err != nil {
		return err
	}
	msg := &core.EmailMessage{
		To:           []mail.Address{{Address: core.CleanString(data.Email, true /* lower */)}},
		Subject:      res.Title,
		TemplateName: deliveryTemplate,
		TemplateData: deliveryData{
			ReportTitle: res.Title,
			SenderName:  usr.DisplayName(),
			Period:      report.LongDate(rng.From) + " - " + report.LongDate(rng.To),
			FileName:    res.FileName,
			SchoolName:  api.conf.SchoolName,
		},
	}
	if usr.Email != "" {
		msg.Cc = []mail.Address{{Name: usr.Name, Address: usr.Email}}
	}
	if err := msg.Attach(bytes.NewReader(res.Content), res.FileName, res.ContentType); err != nil {
		return errors.Wrap(err, "attaching report")
	}
	api.mailSvc.SendMessages(msg)

	return ctx.JSON(http.StatusAccepted, SuccessResponse{
		Success:  fmt.Sprintf("El reporte será enviado a %s.", data.Email),
		FileName: res.FileName,
		Warnings: res.Warnings,
	})
}
