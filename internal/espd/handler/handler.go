package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
	"github.com/espd/espd-web/backend/go-services/internal/espd"
	"github.com/espd/espd-web/backend/go-services/internal/espd/service"
	"github.com/espd/espd-web/backend/go-services/internal/export"
	"github.com/espd/espd-web/backend/go-services/internal/storage"
	"github.com/gin-gonic/gin"
)

// Exporter is the export pipeline as seen by the routes.
type Exporter interface {
	Export(ctx context.Context, d *espd.Document) (*export.Record, error)
	History(ctx context.Context, docID string) ([]*export.Record, error)
	Open(ctx context.Context, docID, exportID string) (*export.Record, *storage.Object, error)
}

// Options configures RegisterRoutes. Protect is applied to every mutating
// route (typically auth and rate limiting). A nil Exporter disables the
// export routes.
type Options struct {
	Exporter Exporter
	Protect  []gin.HandlerFunc
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, espd.ErrUnknownField), errors.Is(err, export.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCriterion), errors.Is(err, espd.ErrVariantMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func listItem(d *espd.Document) gin.H {
	return gin.H{
		"id":             d.ID,
		"procedureTitle": d.ProcedureTitle,
		"updatedAt":      d.UpdatedAt,
	}
}

func RegisterRoutes(r gin.IRouter, svc service.Service, opts Options) {
	protect := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, opts.Protect...), h)
	}

	r.GET("/api/criteria", func(c *gin.Context) {
		var set []criteria.Criterion
		switch strings.ToLower(c.Query("set")) {
		case "":
			set = criteria.All()
		case "exclusion":
			set = criteria.Exclusion
		case "selection":
			set = criteria.Selection
		case "other":
			set = criteria.Other
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown criterion set " + c.Query("set")})
			return
		}
		if raw := c.Query("variant"); raw != "" {
			v, err := criteria.ParseVariant(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filtered := make([]criteria.Criterion, 0, len(set))
			for _, cr := range set {
				if cr.Variant == v {
					filtered = append(filtered, cr)
				}
			}
			set = filtered
		}
		c.JSON(http.StatusOK, set)
	})

	r.GET("/api/criteria/:id", func(c *gin.Context) {
		cr, ok := criteria.ByID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown criterion " + c.Param("id")})
			return
		}
		c.JSON(http.StatusOK, cr)
	})

	r.GET("/api/espd", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		out := make([]gin.H, 0, len(list))
		for _, d := range list {
			out = append(out, listItem(d))
		}
		c.JSON(http.StatusOK, out)
	})

	r.POST("/api/espd", protect(func(c *gin.Context) {
		var d espd.Document
		if err := c.ShouldBindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := svc.Create(c.Request.Context(), &d)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	})...)

	r.GET("/api/espd/:id", func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.PUT("/api/espd/:id", protect(func(c *gin.Context) {
		var d espd.Document
		if err := c.ShouldBindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d.ID = c.Param("id")
		if err := svc.Update(c.Request.Context(), &d); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": d.ID})
	})...)

	r.DELETE("/api/espd/:id", protect(func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})...)

	r.GET("/api/espd/:id/summary", func(c *gin.Context) {
		sum, err := svc.Summary(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	})

	sweep := func(s espd.Sweep) gin.HandlerFunc {
		return func(c *gin.Context) {
			d, rep, err := svc.Apply(c.Request.Context(), c.Param("id"), s)
			if err != nil {
				fail(c, err)
				return
			}
			failures := make([]string, 0, len(rep.Failures))
			for _, f := range rep.Failures {
				failures = append(failures, f.Error())
			}
			c.JSON(http.StatusOK, gin.H{
				"touched":  rep.Touched,
				"failures": failures,
				"summary":  d.Summary(),
			})
		}
	}
	r.POST("/api/espd/:id/exclusion/activate", protect(sweep(espd.SweepExclusion))...)
	r.POST("/api/espd/:id/exclusion/activate-eu", protect(sweep(espd.SweepExclusionEU))...)
	r.POST("/api/espd/:id/selection/activate", protect(sweep(espd.SweepSelection))...)

	r.GET("/api/espd/:id/criteria/:field", func(c *gin.Context) {
		crit, err := svc.ReadCriterion(c.Request.Context(), c.Param("id"), c.Param("field"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, crit)
	})

	r.PUT("/api/espd/:id/criteria/:field", protect(func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil || len(strings.TrimSpace(string(raw))) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body required"})
			return
		}
		crit, err := svc.WriteCriterion(c.Request.Context(), c.Param("id"), c.Param("field"), raw)
		if err != nil {
			fail(c, err)
			return
		}
		if crit == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, crit)
	})...)

	if opts.Exporter == nil {
		return
	}

	r.POST("/api/espd/:id/export", protect(func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		rec, err := opts.Exporter.Export(c.Request.Context(), d)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, rec)
	})...)

	r.GET("/api/espd/:id/exports", func(c *gin.Context) {
		recs, err := opts.Exporter.History(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
	})

	r.GET("/api/espd/:id/exports/:exportId/content", func(c *gin.Context) {
		_, obj, err := opts.Exporter.Open(c.Request.Context(), c.Param("id"), c.Param("exportId"))
		if err != nil {
			fail(c, err)
			return
		}
		defer obj.Close()
		c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, nil)
	})
}
