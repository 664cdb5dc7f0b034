// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package dir

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/bhuisgen/resource/pkg/resource"
)

func TestDirSourceInit(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("test"), 0600); err != nil {
		t.Fatal(err)
	}

	type args struct {
		config map[string]interface{}
	}
	tests := []struct {
		name       string
		args       args
		wantNS     resource.Namespace
		wantPrefix string
		wantErr    bool
	}{
		{
			name: "default",
			args: args{
				config: map[string]interface{}{
					"path": dir,
				},
			},
			wantNS:     resource.Default,
			wantPrefix: "/",
		},
		{
			name: "fs namespace",
			args: args{
				config: map[string]interface{}{
					"path":      dir,
					"namespace": "fs",
				},
			},
			wantNS: resource.FS,
		},
		{
			name: "custom prefix",
			args: args{
				config: map[string]interface{}{
					"path":   dir,
					"prefix": "/static/",
				},
			},
			wantPrefix: "/static/",
		},
		{
			name:    "error no configuration",
			wantErr: true,
		},
		{
			name: "error not a directory",
			args: args{
				config: map[string]interface{}{
					"path": file,
				},
			},
			wantErr: true,
		},
		{
			name: "error invalid namespace",
			args: args{
				config: map[string]interface{}{
					"path":      dir,
					"namespace": "unknown",
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &dirSource{
				osDirFS: dirOsDirFS,
				osStat:  dirOsStat,
			}
			err := s.Init(tt.args.config, slog.Default())
			if (err != nil) != tt.wantErr {
				t.Errorf("dirSource.Init() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if s.namespace != tt.wantNS || s.prefix != tt.wantPrefix {
				t.Errorf("dirSource.Init() namespace = %v, prefix = %q, want %v, %q", s.namespace, s.prefix,
					tt.wantNS, tt.wantPrefix)
			}
		})
	}
}

func TestDirSourceLoad(t *testing.T) {
	type fields struct {
		namespace resource.Namespace
		prefix    string
		osDirFS   func(dir string) fs.FS
	}
	tests := []struct {
		name    string
		fields  fields
		want    map[string][]byte
		wantErr bool
	}{
		{
			name: "default",
			fields: fields{
				prefix: "/",
				osDirFS: func(dir string) fs.FS {
					return fstest.MapFS{
						"qw.txt":       {Data: []byte("qw")},
						"prefix/1.txt": {Data: []byte("1")},
					}
				},
			},
			want: map[string][]byte{
				"/qw.txt":       []byte("qw"),
				"/prefix/1.txt": []byte("1"),
			},
		},
		{
			name: "empty directory",
			fields: fields{
				prefix: "/",
				osDirFS: func(dir string) fs.FS {
					return fstest.MapFS{}
				},
			},
			want: map[string][]byte{},
		},
		{
			name: "error read directory",
			fields: fields{
				osDirFS: func(dir string) fs.FS {
					return errorFS{}
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &dirSource{
				config:    &dirSourceConfig{Path: "test"},
				logger:    slog.Default(),
				namespace: tt.fields.namespace,
				prefix:    tt.fields.prefix,
				osDirFS:   tt.fields.osDirFS,
			}
			b := resource.NewBuilder()
			err := s.Load(context.Background(), b)
			if (err != nil) != tt.wantErr {
				t.Errorf("dirSource.Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got := maps.Collect(b.Build().Items("", false)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dirSource.Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirSourceLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "contrib", ".dist-info"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "contrib", ".dist-info", "METADATA"), []byte("Metadata-Version: 2.1"),
		0600); err != nil {
		t.Fatal(err)
	}

	s := &dirSource{
		osDirFS: dirOsDirFS,
		osStat:  dirOsStat,
	}
	if err := s.Init(map[string]interface{}{"path": dir, "namespace": "fs"}, slog.Default()); err != nil {
		t.Fatalf("dirSource.Init() error = %v", err)
	}
	b := resource.NewBuilder()
	if err := s.Load(context.Background(), b); err != nil {
		t.Fatalf("dirSource.Load() error = %v", err)
	}
	data, err := b.Build().FSRead("contrib/.dist-info/METADATA")
	if err != nil || string(data) != "Metadata-Version: 2.1" {
		t.Errorf("Table.FSRead() = %q, %v", data, err)
	}
}

// errorFS is a file system failing on every operation.
type errorFS struct{}

func (errorFS) Open(name string) (fs.File, error) {
	return nil, errors.New("test error")
}
