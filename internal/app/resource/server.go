// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"path"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bhuisgen/resource/pkg/core"
	"github.com/bhuisgen/resource/pkg/log"
	"github.com/bhuisgen/resource/pkg/resource"
)

// server implements the read-only HTTP server of the store.
type server struct {
	config    *serverConfig
	logger    *slog.Logger
	store     core.Store
	netListen func(network, address string) (net.Listener, error)
}

// serverConfig implements the server configuration.
type serverConfig struct {
	ListenAddr      string `mapstructure:"listenAddr"`
	ListenPort      *int   `mapstructure:"listenPort"`
	ReadTimeout     *int   `mapstructure:"readTimeout"`
	WriteTimeout    *int   `mapstructure:"writeTimeout"`
	IdleTimeout     *int   `mapstructure:"idleTimeout"`
	ShutdownTimeout *int   `mapstructure:"shutdownTimeout"`
	Compress        bool   `mapstructure:"compress"`
	AccessLog       bool   `mapstructure:"accessLog"`
}

// serverItem is an entry of the items response.
type serverItem struct {
	Key  string `json:"key"`
	Size int    `json:"size"`
	Data []byte `json:"data,omitempty"`
}

const (
	serverLogger string = "server"

	serverConfigDefaultListenAddr      string = "127.0.0.1"
	serverConfigDefaultListenPort      int    = 8080
	serverConfigDefaultReadTimeout     int    = 60
	serverConfigDefaultWriteTimeout    int    = 60
	serverConfigDefaultIdleTimeout     int    = 60
	serverConfigDefaultShutdownTimeout int    = 30

	serverHeaderRequestId string = "X-Request-ID"
	serverHeaderServer    string = "Server"

	serverHeaderServerValue string = "resource"
)

// serverNetListen redirects to net.Listen.
func serverNetListen(network, address string) (net.Listener, error) {
	return net.Listen(network, address)
}

// newServer creates a new server.
func newServer(store core.Store) *server {
	return &server{
		logger:    log.New(serverLogger),
		store:     store,
		netListen: serverNetListen,
	}
}

// Init initializes the server.
func (s *server) Init(config map[string]interface{}) error {
	s.logger.Debug("Initializing server")

	if err := mapstructure.Decode(config, &s.config); err != nil {
		s.logger.Error("Failed to parse configuration", "err", err)
		return fmt.Errorf("parse config: %w", err)
	}
	if s.config == nil {
		s.config = &serverConfig{}
	}

	var errConfig bool

	if s.config.ListenAddr == "" {
		s.config.ListenAddr = serverConfigDefaultListenAddr
	}
	if s.config.ListenPort == nil {
		defaultValue := serverConfigDefaultListenPort
		s.config.ListenPort = &defaultValue
	}
	if *s.config.ListenPort < 0 || *s.config.ListenPort > 65535 {
		s.logger.Error("Invalid value", "option", "ListenPort", "value", *s.config.ListenPort)
		errConfig = true
	}
	for _, option := range []struct {
		name         string
		value        **int
		defaultValue int
	}{
		{"ReadTimeout", &s.config.ReadTimeout, serverConfigDefaultReadTimeout},
		{"WriteTimeout", &s.config.WriteTimeout, serverConfigDefaultWriteTimeout},
		{"IdleTimeout", &s.config.IdleTimeout, serverConfigDefaultIdleTimeout},
		{"ShutdownTimeout", &s.config.ShutdownTimeout, serverConfigDefaultShutdownTimeout},
	} {
		if *option.value == nil {
			defaultValue := option.defaultValue
			*option.value = &defaultValue
		}
		if **option.value < 0 {
			s.logger.Error("Invalid value", "option", option.name, "value", **option.value)
			errConfig = true
		}
	}

	if errConfig {
		return errors.New("config")
	}

	return nil
}

// Handler returns the HTTP handler of the server.
func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /keys", s.handleKeys)
	mux.HandleFunc("GET /items", s.handleItems)
	mux.HandleFunc("GET /find", s.handleFind)
	mux.HandleFunc("GET /find/{key...}", s.handleFind)
	mux.HandleFunc("GET /resfs", s.handleFSRead)
	mux.HandleFunc("GET /resfs/{$}", s.handleFSIndex)
	mux.HandleFunc("GET /resfs/{path...}", s.handleFSRead)

	var h http.Handler = mux
	if s.config.Compress {
		h = gzhttp.GzipHandler(h)
	}

	return s.middleware(h)
}

// Serve serves the store until the context is done.
func (s *server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.ListenAddr, strconv.Itoa(*s.config.ListenPort))
	l, err := s.netListen("tcp", addr)
	if err != nil {
		s.logger.Error("Failed to listen", "addr", addr, "err", err)
		return fmt.Errorf("listen: %w", err)
	}

	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(*s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(*s.config.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(*s.config.IdleTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.Serve(l)
	}()

	s.logger.Info("Server started", "addr", l.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Error("Server failure", "err", err)
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(*s.config.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Failed to shutdown server", "err", err)
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errc

	s.logger.Info("Server stopped")

	return nil
}

// handleIndex lists the keys of the default namespace.
func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var links []indexLink
	for key := range s.store.Keys(r.URL.Query().Get("prefix"), false) {
		links = append(links, indexLink{name: key, href: findURL(key)})
	}
	s.writeIndex(w, "Resources", links)
}

// handleFSIndex lists the paths of the resfs namespace.
func (s *server) handleFSIndex(w http.ResponseWriter, r *http.Request) {
	var links []indexLink
	for file := range s.store.FSFiles() {
		links = append(links, indexLink{name: file, href: resfsURL(file)})
	}
	s.writeIndex(w, "Files", links)
}

// handleKeys writes the keys starting with the prefix parameter, one per line.
func (s *server) handleKeys(w http.ResponseWriter, r *http.Request) {
	prefix, strip, ok := s.parseScan(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for key := range s.store.Keys(prefix, strip) {
		if _, err := io.WriteString(w, key+"\n"); err != nil {
			return
		}
	}
}

// handleItems writes the items starting with the prefix parameter.
func (s *server) handleItems(w http.ResponseWriter, r *http.Request) {
	prefix, strip, ok := s.parseScan(w, r)
	if !ok {
		return
	}
	withData, _ := strconv.ParseBool(r.URL.Query().Get("data"))

	items := []serverItem{}
	for key, value := range s.store.Items(prefix, strip) {
		item := serverItem{Key: key, Size: len(value)}
		if withData {
			item.Data = value
		}
		items = append(items, item)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		s.logger.Error("Failed to write response", "err", err)
	}
}

// handleFind writes the resource stored under the requested key, given
// either as the path following /find or as the key parameter.
func (s *server) handleFind(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = "/" + r.PathValue("key")
	}
	data, err := s.store.Find(key)
	s.writeResource(w, r, key, data, err)
}

// handleFSRead writes the content of the requested resfs path, given either
// as the path following /resfs/ or as the path parameter.
func (s *server) handleFSRead(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("path")
	if query := r.URL.Query(); query.Has("path") {
		name = query.Get("path")
	}
	data, err := s.store.FSRead(name)
	s.writeResource(w, r, name, data, err)
}

// parseScan parses the prefix and strip parameters.
func (s *server) parseScan(w http.ResponseWriter, r *http.Request) (string, bool, bool) {
	query := r.URL.Query()

	var strip bool
	if v := query.Get("strip"); v != "" {
		var err error
		strip, err = strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid strip parameter", http.StatusBadRequest)
			return "", false, false
		}
	}

	return query.Get("prefix"), strip, true
}

// writeResource writes a resource or the lookup error.
func (s *server) writeResource(w http.ResponseWriter, r *http.Request, name string, data []byte, err error) {
	if err != nil {
		if resource.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("Failed to find resource", "name", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("Failed to write response", "name", name, "err", err)
	}
}

// writeIndex renders an HTML index page.
func (s *server) writeIndex(w http.ResponseWriter, title string, links []indexLink) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderIndex(w, title, links); err != nil {
		s.logger.Error("Failed to render index", "err", err)
	}
}

// middleware returns the handler wrapped with the server middleware.
func (s *server) middleware(next http.Handler) http.Handler {
	f := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &serverResponseWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				rw.WriteHeader(http.StatusInternalServerError)
				s.logger.Error("Handler failure", "err", err, "stack", string(debug.Stack()))
			}
			if s.config.AccessLog {
				s.logger.Info("Request", "method", r.Method, "url", r.URL.String(), "status", rw.status,
					"size", rw.size, "duration", time.Since(start), "requestId", rw.Header().Get(serverHeaderRequestId))
			}
		}()

		rw.Header().Set(serverHeaderServer, serverHeaderServerValue)
		rw.Header().Set(serverHeaderRequestId, uuid.NewString())

		next.ServeHTTP(rw, r)
	}

	return http.HandlerFunc(f)
}

var _ Server = (*server)(nil)

// serverResponseWriter records the status and size of a response.
type serverResponseWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

// WriteHeader implements http.ResponseWriter.
func (w *serverResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

// Write implements http.ResponseWriter.
func (w *serverResponseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Unwrap returns the wrapped response writer.
func (w *serverResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// findURL returns the URL of the resource stored under key.
//
// Keys the mux would clean (empty segments, dot segments) are passed as a
// query parameter.
func findURL(key string) string {
	if strings.HasPrefix(key, "/") && path.Clean(key) == key {
		return (&url.URL{Path: "/find" + key}).EscapedPath()
	}
	return "/find?" + url.Values{"key": {key}}.Encode()
}

// resfsURL returns the URL of the resfs file at name.
func resfsURL(name string) string {
	if name != "" && path.Clean("/"+name) == "/"+name {
		return (&url.URL{Path: "/resfs/" + name}).EscapedPath()
	}
	return "/resfs?" + url.Values{"path": {name}}.Encode()
}

// indexLink is a link of an index page.
type indexLink struct {
	name string
	href string
}

// renderIndex renders the HTML index page of the given links.
func renderIndex(w io.Writer, title string, links []indexLink) error {
	ul := htmlElement(atom.Ul)
	for _, link := range links {
		a := htmlElement(atom.A, html.Attribute{Key: "href", Val: link.href})
		a.AppendChild(htmlText(link.name))
		li := htmlElement(atom.Li)
		li.AppendChild(a)
		ul.AppendChild(li)
	}

	t := htmlElement(atom.Title)
	t.AppendChild(htmlText(title))
	head := htmlElement(atom.Head)
	head.AppendChild(htmlElement(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(t)

	h1 := htmlElement(atom.H1)
	h1.AppendChild(htmlText(title))
	body := htmlElement(atom.Body)
	body.AppendChild(h1)
	body.AppendChild(ul)

	root := htmlElement(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	return html.Render(w, doc)
}

// htmlElement returns a new element node.
func htmlElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

// htmlText returns a new text node.
func htmlText(s string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: s,
	}
}
