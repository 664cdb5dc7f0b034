// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package manifest

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bhuisgen/resource/pkg/resource"
)

func TestManifestSourceInit(t *testing.T) {
	type args struct {
		config map[string]interface{}
	}
	tests := []struct {
		name       string
		args       args
		wantFilter string
		wantErr    bool
	}{
		{
			name: "default",
			args: args{
				config: map[string]interface{}{
					"path": "resources.json",
				},
			},
			wantFilter: "$.resources[*]",
		},
		{
			name: "filter",
			args: args{
				config: map[string]interface{}{
					"path":   "resources.json",
					"filter": "$.items",
				},
			},
			wantFilter: "$.items",
		},
		{
			name:    "error no configuration",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &manifestSource{}
			err := s.Init(tt.args.config, slog.Default())
			if (err != nil) != tt.wantErr {
				t.Errorf("manifestSource.Init() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if s.config.Filter != tt.wantFilter {
				t.Errorf("manifestSource.Init() filter = %v, want %v", s.config.Filter, tt.wantFilter)
			}
		})
	}
}

func TestManifestSourceLoad(t *testing.T) {
	type fields struct {
		filter     string
		osReadFile func(name string) ([]byte, error)
	}
	tests := []struct {
		name        string
		fields      fields
		wantDefault map[string][]byte
		wantFS      map[string][]byte
		wantErr     bool
	}{
		{
			name: "default",
			fields: fields{
				filter: "$.resources[*]",
				osReadFile: func(name string) ([]byte, error) {
					switch name {
					case filepath.Join("data", "resources.json"):
						return []byte(`{"resources": [
							{"key": "/qw.txt", "data": "na gorshke sidel korol\n"},
							{"key": "/empty.txt", "data": ""},
							{"key": "/bin", "base64": "AAEC"},
							{"key": "contrib/METADATA", "namespace": "fs", "file": "METADATA"}
						]}`), nil
					case filepath.Join("data", "METADATA"):
						return []byte("Metadata-Version: 2.1\n"), nil
					}
					return nil, errors.New("test error")
				},
			},
			wantDefault: map[string][]byte{
				"/qw.txt":    []byte("na gorshke sidel korol\n"),
				"/empty.txt": {},
				"/bin":       {0, 1, 2},
			},
			wantFS: map[string][]byte{
				"contrib/METADATA": []byte("Metadata-Version: 2.1\n"),
			},
		},
		{
			name: "single entry filter",
			fields: fields{
				filter: "$.resource",
				osReadFile: func(name string) ([]byte, error) {
					return []byte(`{"resource": {"key": "/qw.txt", "data": "qw"}}`), nil
				},
			},
			wantDefault: map[string][]byte{
				"/qw.txt": []byte("qw"),
			},
			wantFS: map[string][]byte{},
		},
		{
			name: "error read manifest",
			fields: fields{
				filter: "$.resources[*]",
				osReadFile: func(name string) ([]byte, error) {
					return nil, errors.New("test error")
				},
			},
			wantErr: true,
		},
		{
			name: "error invalid json",
			fields: fields{
				filter: "$.resources[*]",
				osReadFile: func(name string) ([]byte, error) {
					return []byte(`{`), nil
				},
			},
			wantErr: true,
		},
		{
			name: "error invalid filter result",
			fields: fields{
				filter: "$.count",
				osReadFile: func(name string) ([]byte, error) {
					return []byte(`{"count": 1}`), nil
				},
			},
			wantErr: true,
		},
		{
			name: "error missing key",
			fields: fields{
				filter: "$.resources[*]",
				osReadFile: func(name string) ([]byte, error) {
					return []byte(`{"resources": [{"data": "qw"}]}`), nil
				},
			},
			wantErr: true,
		},
		{
			name: "error missing value",
			fields: fields{
				filter: "$.resources[*]",
				osReadFile: func(name string) ([]byte, error) {
					return []byte(`{"resources": [{"key": "/qw.txt"}]}`), nil
				},
			},
			wantErr: true,
		},
		{
			name: "error invalid base64",
			fields: fields{
				filter: "$.resources[*]",
				osReadFile: func(name string) ([]byte, error) {
					return []byte(`{"resources": [{"key": "/qw.txt", "base64": "!"}]}`), nil
				},
			},
			wantErr: true,
		},
		{
			name: "error duplicate key",
			fields: fields{
				filter: "$.resources[*]",
				osReadFile: func(name string) ([]byte, error) {
					return []byte(`{"resources": [{"key": "/a", "data": "1"}, {"key": "/a", "data": "2"}]}`), nil
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &manifestSource{
				config: &manifestSourceConfig{
					Path:   filepath.Join("data", "resources.json"),
					Filter: tt.fields.filter,
				},
				logger:        slog.Default(),
				osReadFile:    tt.fields.osReadFile,
				jsonUnmarshal: manifestJsonUnmarshal,
			}
			b := resource.NewBuilder()
			err := s.Load(context.Background(), b)
			if (err != nil) != tt.wantErr {
				t.Errorf("manifestSource.Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			table := b.Build()
			if got := maps.Collect(table.Items("", false)); !reflect.DeepEqual(got, tt.wantDefault) {
				t.Errorf("manifestSource.Load() default = %q, want %q", got, tt.wantDefault)
			}
			if got := maps.Collect(table.View(resource.FS).Items("", false)); !reflect.DeepEqual(got, tt.wantFS) {
				t.Errorf("manifestSource.Load() fs = %q, want %q", got, tt.wantFS)
			}
		})
	}
}
