package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/metadata"
)

const maxRequestBody = 1 << 20

var errEmptyBody = errors.New("request body is required")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// StringList accepts either a JSON array of strings or a single comma-separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*l = nil
	case string:
		*l = metadata.SplitTags(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("tags must be strings, got %T", item)
			}
			out = append(out, s)
		}
		*l = out
	default:
		return fmt.Errorf("tags must be a string or a list of strings, got %T", raw)
	}
	return nil
}

type regionRequest struct {
	Environment string `json:"environment" validate:"required"`
	FQDN        string `json:"fqdn,omitempty"`
	Namespace   string `json:"namespace,omitempty"`
	ShortName   string `json:"shortName,omitempty"`
	RegionName  string `json:"regionName,omitempty"`
	Token       string `json:"token,omitempty"`
	UserEmail   string `json:"userEmail,omitempty" validate:"omitempty,email"`
}

func (r *regionRequest) ref(actor string) metadata.RegionRef {
	return metadata.RegionRef{
		Environment: r.Environment,
		FQDN:        r.FQDN,
		Namespace:   r.Namespace,
		ShortName:   r.ShortName,
		RegionName:  r.RegionName,
		Token:       r.Token,
		Actor:       actor,
	}
}

type deployRequest struct {
	Environment         string     `json:"environment" validate:"required"`
	ShortName           string     `json:"shortName" validate:"required"`
	RegionName          string     `json:"regionName,omitempty"`
	AdminEmail          string     `json:"adminEmail,omitempty" validate:"omitempty,email"`
	AdminPassword       string     `json:"adminPassword" validate:"required"`
	DBBackend           string     `json:"dbBackend" validate:"required"`
	ChartURL            string     `json:"charturl" validate:"required"`
	UseDUSpecificLECert bool       `json:"use_du_specific_le_http_cert"`
	LeaseDate           string     `json:"leaseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Tags                StringList `json:"tags,omitempty" validate:"omitempty,dive,max=64,excludesall=0x2C"`
	Token               string     `json:"token,omitempty"`
	UserEmail           string     `json:"userEmail,omitempty" validate:"omitempty,email"`
}

type upgradeRequest struct {
	regionRequest
	ChartURL            string `json:"charturl" validate:"required"`
	UseDUSpecificLECert bool   `json:"use_du_specific_le_http_cert"`
}

type tagRequest struct {
	regionRequest
	Tag string `json:"tag" validate:"required,max=64,excludesall=0x2C"`
}

type leaseRequest struct {
	regionRequest
	LeaseDate string `json:"leaseDate" validate:"required,datetime=2006-01-02"`
	Note      string `json:"note,omitempty" validate:"max=1024"`
}

type ownerRequest struct {
	regionRequest
	Owner string `json:"owner" validate:"required,email"`
}

type sweepRequest struct {
	Environment string `json:"environment"`
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, w http.ResponseWriter, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", model.ErrValidation, errEmptyBody)
		}
		return model.Invalidf("malformed request body: %v", err)
	}
	return check(dst)
}

// check runs the struct validation rules on dst.
func check(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.Invalidf("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return model.Invalidf("%s", strings.Join(msgs, "; "))
}
