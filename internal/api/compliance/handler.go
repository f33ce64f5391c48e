package compliance

import (
	"net/http"
	"strings"
	"time"

	"folkify/database"
	"folkify/internal/api/uploads"
	"folkify/internal/app/http/middleware"
	"folkify/internal/app/http/respond"
	"folkify/internal/domain/compliance"
	"folkify/internal/domain/media"
	"folkify/internal/infra/imagehost"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func reply(c *gin.Context, status int, rec *compliance.Record) {
	res := compliance.Score(*rec)
	respond.OK(c, status, gin.H{
		"compliance": rec,
		"items":      res.Items,
	})
}

// GET /compliance
func GetCompliance(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	rec, err := compliance.GetOrDefault(c.Request.Context(), database.DB, s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec)
}

// PUT /compliance
func UpdateCompliance(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	rec, err := compliance.GetOrDefault(ctx, database.DB, s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	applyUpdate(rec, req)

	if err := compliance.Save(ctx, database.DB, rec); err != nil {
		respond.Fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec)
}

func applyUpdate(rec *compliance.Record, req UpdateRequest) {
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setText := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}

	setBool(&rec.GSTRegistered, req.GSTRegistered)
	setBool(&rec.MaterialDisclosure, req.MaterialDisclosure)
	setBool(&rec.ArtisanCertificate, req.ArtisanCertificate)
	setBool(&rec.EcoFriendlyPackaging, req.EcoFriendlyPackaging)
	setText(&rec.GSTNumber, req.GSTNumber)
	setText(&rec.PackagingDetails, req.PackagingDetails)
	setText(&rec.AdditionalNotes, req.AdditionalNotes)
	if req.HSCode != nil {
		rec.HSCode = strings.ToUpper(strings.TrimSpace(*req.HSCode))
	}
	if req.MaterialsList != nil {
		rec.MaterialsList = trimList(req.MaterialsList)
	}
	if req.TargetMarkets != nil {
		rec.TargetMarkets = trimList(req.TargetMarkets)
	}
	if req.RemoveQualityCertificate {
		rec.QualityCertificate = nil
	}
	if req.RemoveExportLicense {
		rec.ExportLicense = nil
	}
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// POST /compliance/documents/:field
func UploadDocument(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	ctx := c.Request.Context()
	field := c.Param("field")

	if !compliance.DocumentField(field) {
		respond.FailWith(c, http.StatusBadRequest, "unknown document field")
		return
	}
	rec, err := compliance.GetOrDefault(ctx, database.DB, s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}

	data, filename, err := uploads.FormFile(c)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	res, err := imagehost.Upload(ctx, imagehost.Default, "compliance/"+s.UserID, data, imagehost.DocumentTypes)
	if err != nil {
		respond.Fail(c, err)
		return
	}

	file := media.FileMeta{
		URL:        res.URL,
		ProviderID: res.ProviderID,
		Filename:   filename,
		Size:       res.Size,
		UploadedAt: time.Now().UTC(),
	}
	if err := compliance.AttachDocument(rec, field, file); err != nil {
		respond.Fail(c, err)
		return
	}

	if err := compliance.Save(ctx, database.DB, rec); err != nil {
		respond.Fail(c, err)
		return
	}
	log.Info().Str("artist_id", s.UserID).Str("field", field).Msg("compliance document uploaded")
	reply(c, http.StatusCreated, rec)
}

// POST /compliance/submit
func SubmitForReview(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	rec, err := compliance.GetOrDefault(ctx, database.DB, s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	if err := compliance.SubmitForReview(rec, time.Now().UTC()); err != nil {
		respond.Fail(c, err)
		return
	}
	if err := compliance.Save(ctx, database.DB, rec); err != nil {
		respond.Fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec)
}
