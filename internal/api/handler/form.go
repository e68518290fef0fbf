package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cipco/cms-backend/internal/core/domain"
)

const imageField = "image"

// readImage loads the optional image part of a multipart request.
func readImage(c echo.Context, maxBytes int64) (*domain.Image, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("image exceeds %d bytes", maxBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return &domain.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	}, nil
}

// formValues returns the parsed url-encoded or multipart fields.
func formValues(c echo.Context) (url.Values, error) {
	form, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	return form, nil
}

// formString returns nil when key is absent so partial updates can tell
// "not sent" from "sent empty".
func formString(form url.Values, key string) *string {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := strings.TrimSpace(vs[0])
	return &v
}

func formBool(form url.Values, key string) (*bool, error) {
	s := formString(form, key)
	if s == nil || *s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(*s)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, key+" must be a boolean")
	}
	return &b, nil
}

func formTags(form url.Values, key string) *[]string {
	s := formString(form, key)
	if s == nil {
		return nil
	}
	tags := splitTags(*s)
	return &tags
}

// splitTags parses the comma separated tag list sent by the admin UI.
func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
