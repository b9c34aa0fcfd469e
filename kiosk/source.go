/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxSourceSize caps how much of a question source is read.
var maxSourceSize int64 = 8 << 20

// Source provides the raw records a Pool is built from.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
	String() string
}

// NewSource returns a URLSource for http(s) locations and a FileSource otherwise.
func NewSource(location string) Source {
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return &URLSource{URL: location}
	}

	return &FileSource{Path: location}
}

// FileSource reads a JSON or YAML document from disk.
type FileSource struct {
	Path string
}

func (s *FileSource) String() string {
	return s.Path
}

func (s *FileSource) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSourceSize))
	if err != nil {
		return nil, err
	}

	return decodeRecords(data, isYAML(s.Path, ""))
}

// URLSource fetches a JSON or YAML document over HTTP.
type URLSource struct {
	URL    string
	Client *http.Client
}

func (s *URLSource) String() string {
	return s.URL
}

func (s *URLSource) Records(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, err
	}

	path := s.URL
	if u, err := url.Parse(s.URL); err == nil {
		path = u.Path
	}

	return decodeRecords(data, isYAML(path, resp.Header.Get("Content-Type")))
}

func isYAML(path, contentType string) bool {
	if strings.Contains(contentType, "yaml") {
		return true
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}

	return false
}

func decodeRecords(data []byte, asYAML bool) ([]Record, error) {
	var doc document

	if asYAML {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}

		return doc.Questions, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	return doc.Questions, nil
}
