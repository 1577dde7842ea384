// Package modeserver serves the timing generators and the mode catalog over
// HTTP.
package modeserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/modeline/mode"
	"github.com/sarchlab/modeline/modedb"
	"github.com/sarchlab/modeline/modegen"
)

//go:generate mockgen -destination "mock_modeserver_test.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/modeline/modeserver Catalog

// Catalog is the mode collection the server exposes.
type Catalog interface {
	Add(source string, m *mode.DisplayMode) (modedb.Entry, bool, error)
	Get(id string) (modedb.Entry, error)
	List() []modedb.Entry
	Len() int
	Remove(id string) error
}

// Server answers generation and catalog requests.
type Server struct {
	portNumber     int
	defaultRefresh int
	openBrowser    bool
	catalog        Catalog
	registry       *prometheus.Registry
	metrics        *metrics
	router         *mux.Router
}

// Handler returns the router of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/generate/{algo}/{hdisplay}x{vdisplay}", s.generate).
		Methods(http.MethodGet)
	r.HandleFunc("/api/modes", s.listModes).Methods(http.MethodGet)
	r.HandleFunc("/api/modes", s.addMode).Methods(http.MethodPost)
	r.HandleFunc("/api/mode/{id}", s.modeDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/mode/{id}", s.removeMode).Methods(http.MethodDelete)
	r.HandleFunc("/api/resource", s.listResources)
	r.HandleFunc("/api/profile", s.collectProfile)
	r.Handle("/metrics",
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// StartServer listens on the configured port and serves requests in the
// background. It returns the URL of the server.
func (s *Server) StartServer() string {
	actualPort := ":0"
	if s.portNumber > 0 {
		actualPort = ":" + strconv.Itoa(s.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Serving display modes at %s\n", url)

	go func() {
		err := http.Serve(listener, s.router)
		dieOnErr(err)
	}()

	if s.openBrowser {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open browser: %v\n", err)
		}
	}

	return url
}

type generateRsp struct {
	Algorithm string            `json:"algorithm"`
	Mode      *mode.DisplayMode `json:"mode"`
	Modeline  string            `json:"modeline"`
	VRefresh  int               `json:"vrefresh"`
	HSync     int               `json:"hsync"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	g, err := modegen.Lookup(vars["algo"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	req, err := s.parseRequest(vars, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, ok := g.(modegen.GTF); ok {
		c, err := parseCoefficients(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		g = modegen.GTF{Coefficients: c}
	}

	m := g.Generate(req)
	s.metrics.generated.WithLabelValues(g.Name()).Inc()

	writeJSON(w, http.StatusOK, generateRsp{
		Algorithm: g.Name(),
		Mode:      m,
		Modeline:  m.String(),
		VRefresh:  m.VRefresh(),
		HSync:     m.HSync(),
	})
}

func (s *Server) parseRequest(
	vars map[string]string,
	r *http.Request,
) (modegen.Request, error) {
	req := modegen.Request{VRefresh: s.defaultRefresh}

	var err error

	if req.HDisplay, err = positiveInt("hdisplay", vars["hdisplay"]); err != nil {
		return req, err
	}

	if req.VDisplay, err = positiveInt("vdisplay", vars["vdisplay"]); err != nil {
		return req, err
	}

	query := r.URL.Query()

	if v := query.Get("refresh"); v != "" {
		if req.VRefresh, err = positiveInt("refresh", v); err != nil {
			return req, err
		}
	}

	flags := []struct {
		name  string
		value *bool
	}{
		{"reduced", &req.Reduced},
		{"interlaced", &req.Interlaced},
		{"margins", &req.Margins},
	}

	for _, f := range flags {
		v := query.Get(f.name)
		if v == "" {
			continue
		}

		if *f.value, err = strconv.ParseBool(v); err != nil {
			return req, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	return req, nil
}

// parseCoefficients reads the GTF coefficients m, c, k and j. c and j are
// given as in the formula and stored doubled.
func parseCoefficients(r *http.Request) (modegen.GTFCoefficients, error) {
	c := modegen.DefaultGTF
	query := r.URL.Query()

	params := []struct {
		name   string
		value  *int
		factor int
	}{
		{"m", &c.M, 1},
		{"c", &c.C2, 2},
		{"k", &c.K, 1},
		{"j", &c.J2, 2},
	}

	for _, p := range params {
		v := query.Get(p.name)
		if v == "" {
			continue
		}

		n, err := positiveInt(p.name, v)
		if err != nil {
			return c, err
		}

		*p.value = n * p.factor
	}

	return c, nil
}

func positiveInt(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, n)
	}

	return n, nil
}

func (s *Server) listModes(w http.ResponseWriter, _ *http.Request) {
	entries := s.catalog.List()
	if entries == nil {
		entries = []modedb.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

type addModeReq struct {
	Source   string            `json:"source"`
	Mode     *mode.DisplayMode `json:"mode,omitempty"`
	Modeline string            `json:"modeline,omitempty"`
}

func (s *Server) addMode(w http.ResponseWriter, r *http.Request) {
	req := addModeReq{}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Source == "" {
		req.Source = "api"
	}

	m := req.Mode
	if req.Modeline != "" {
		parsed, _, err := mode.Parse(req.Modeline)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		m = parsed
	}

	if m == nil {
		writeError(w, http.StatusBadRequest,
			errors.New("either mode or modeline is required"))
		return
	}

	entry, added, err := s.catalog.Add(req.Source, m)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if !added {
		s.metrics.duplicates.Inc()
		writeJSON(w, http.StatusOK, entry)

		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) modeDetails(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.findEntryOr404(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&entry)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (s *Server) removeMode(w http.ResponseWriter, r *http.Request) {
	err := s.catalog.Remove(mux.Vars(r)["id"])

	switch {
	case errors.Is(err, modedb.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) findEntryOr404(
	w http.ResponseWriter,
	id string,
) (modedb.Entry, bool) {
	entry, err := s.catalog.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return modedb.Entry{}, false
	}

	return entry, true
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (s *Server) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, http.StatusOK, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (s *Server) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, http.StatusOK, prof)
}

type errorRsp struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorRsp{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
