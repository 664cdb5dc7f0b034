// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	dir := testStoreDir(t)
	if err := os.WriteFile(filepath.Join(dir, "raw"), []byte("raw"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		config       *config
		wantErr      bool
		wantCheckErr bool
		wantLen      int
	}{
		{
			name: "default",
			config: &config{
				Store: &configStore{
					Config: map[string]interface{}{
						"sources": map[string]interface{}{
							"dir": map[string]interface{}{
								"path": dir,
							},
						},
					},
				},
			},
			wantLen: 4,
		},
		{
			name: "raw prefix",
			config: &config{
				Store: &configStore{
					Config: map[string]interface{}{
						"sources": map[string]interface{}{
							"dir": map[string]interface{}{
								"path":   dir,
								"prefix": "",
							},
						},
					},
				},
			},
			wantLen: 4,
		},
		{
			name:         "no configuration",
			wantCheckErr: true,
		},
		{
			name: "error store",
			config: &config{
				Store: &configStore{
					Config: map[string]interface{}{
						"sources": map[string]interface{}{
							"unknown": nil,
						},
					},
				},
			},
			wantErr: true,
		},
		{
			name: "error server",
			config: &config{
				Store: DefaultConfig().Store,
				Server: &configServer{
					Config: map[string]interface{}{
						"listenPort": -1,
					},
				},
			},
			wantErr: true,
		},
		{
			name: "error load",
			config: &config{
				Store: &configStore{
					Config: map[string]interface{}{
						"sources": map[string]interface{}{
							"test": nil,
						},
					},
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(context.Background(), tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if err := a.Check(); (err != nil) != tt.wantCheckErr {
				t.Errorf("app.Check() error = %v, wantCheckErr %v", err, tt.wantCheckErr)
			}
			if got := a.Store().Len(); got != tt.wantLen {
				t.Errorf("app.Store().Len() = %d, want %d", got, tt.wantLen)
			}
		})
	}
}

func TestAppServe(t *testing.T) {
	a, err := New(context.Background(), &config{
		Store: DefaultConfig().Store,
		Server: &configServer{
			Config: map[string]interface{}{
				"listenPort": 0,
			},
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Serve(ctx); err != nil {
		t.Errorf("app.Serve() error = %v", err)
	}
}
