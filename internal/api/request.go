package api

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/newsroom/internal/core/duration"
	"github.com/example/newsroom/internal/errs"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hms", func(fl validator.FieldLevel) bool {
		_, err := duration.ParseHMS(fl.Field().String())
		return err == nil
	})
	return v
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.InvalidInput("invalid JSON body: %v", err)
	}
	return validate.Struct(dst)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createProgramRequest struct {
	Name            string `json:"name" validate:"required"`
	DefaultDuration string `json:"default_duration" validate:"required,hms"`
}

type loadRundownRequest struct {
	ProgramID     string   `json:"program_id" validate:"required"`
	AirDate       string   `json:"air_date" validate:"required,datetime=2006-01-02"`
	InitialBlocks []string `json:"initial_blocks"`
}

type updateRundownRequest struct {
	Editor     *string   `json:"editor"`
	Presenters *[]string `json:"presenters"`
	Mode       *string   `json:"mode" validate:"omitempty,oneof=live recorded"`
	AirTime    *string   `json:"air_time" validate:"omitempty,hms"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
	Force  bool   `json:"force"`
}

type addBlockRequest struct {
	Title string `json:"title"`
	Index *int   `json:"index" validate:"omitempty,min=0"`
}

type renameBlockRequest struct {
	Title string `json:"title" validate:"required"`
}

type moveRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

type addItemRequest struct {
	Index       *int    `json:"index" validate:"omitempty,min=0"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Details     string  `json:"details"`
	Talent      string  `json:"talent"`
	Reporter    string  `json:"reporter"`
	VideoEditor string  `json:"video_editor"`
	Source      string  `json:"source"`
	Planned     string  `json:"planned" validate:"omitempty,hms"`
	Real        *string `json:"real" validate:"omitempty,hms"`
	Status      string  `json:"status"`
	ReportID    string  `json:"report_id"`
}

type updateItemRequest struct {
	Type        *string `json:"type"`
	Title       *string `json:"title"`
	Details     *string `json:"details"`
	Talent      *string `json:"talent"`
	Reporter    *string `json:"reporter"`
	VideoEditor *string `json:"video_editor"`
	Source      *string `json:"source"`
	Planned     *string `json:"planned" validate:"omitempty,hms"`
	Real        *string `json:"real" validate:"omitempty,hms"`
	ClearReal   bool    `json:"clear_real"`
	ReportID    *string `json:"report_id"`
}

type itemStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

// seconds converts a validated HH:MM:SS value.
func seconds(hms string) int {
	return duration.HMSToSeconds(hms)
}

func optionalSeconds(hms *string) *int {
	if hms == nil {
		return nil
	}
	v := seconds(*hms)
	return &v
}
