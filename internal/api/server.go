package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ulwant/HitungPajakku-sub001/internal/breakeven"
	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
	"github.com/ulwant/HitungPajakku-sub001/internal/output"
	"github.com/ulwant/HitungPajakku-sub001/internal/transform"
)

// Options configures the HTTP surface
type Options struct {
	AllowedOrigins []string
	MetricsPrefix  string
}

// Server exposes the engine over HTTP
type Server struct {
	engine    *calculation.Engine
	compare   *compare.CompareEngine
	templates *transform.TemplateRegistry
	validate  *validator.Validate
	metrics   *Metrics
	logger    logrus.FieldLogger
	opts      Options
}

// CalculationResponse is the data of a single calculator reply
type CalculationResponse struct {
	Calculator string      `json:"calculator"`
	Summary    string      `json:"summary"`
	Result     interface{} `json:"result"`
}

// NewServer creates a server around engine. A nil logger discards request logs.
func NewServer(engine *calculation.Engine, logger logrus.FieldLogger, opts Options) *Server {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Server{
		engine:    engine,
		compare:   compare.NewCompareEngine(engine),
		templates: transform.CreateBuiltInTemplates(),
		validate:  newValidator(),
		metrics:   NewMetrics(opts.MetricsPrefix),
		logger:    logger.WithField("module", "api"),
		opts:      opts,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Router builds the chi router
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{Success: true, Message: "ok"})
	})
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates", s.rates)
		r.Post("/compare", s.compareProfiles)
		r.Post("/grossup", s.grossUp)
		r.Post("/project", s.project)
		r.Post("/{calculator}", s.calculate)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}

// bind decodes and validates a request body, writing the error reply itself when it fails
func (s *Server) bind(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.logger.WithError(err).Debug("decode error")
		badRequest(w, "Invalid request format")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Namespace()] = fmt.Sprintf("failed on %s", fe.Tag())
			}
			validationError(w, details)
			return false
		}
		badRequest(w, err.Error())
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, calculator string, res domain.ComputationResult, payload interface{}) {
	s.metrics.ObserveComputation(calculator, res)
	if len(res.Defaulted) > 0 {
		s.logger.WithFields(logrus.Fields{"calculator": calculator, "defaulted": res.Defaulted}).Warn("rate lookup defaulted")
	}
	success(w, uuid.NewString(), CalculationResponse{
		Calculator: calculator,
		Summary:    output.Summary(res),
		Result:     payload,
	})
}

// Calculators lists the names accepted by POST /api/v1/{calculator}
func Calculators() []string {
	return []string{"pph21", "pesangon", "pensiun", "pph23", "final", "umkm", "investasi", "ppn", "ppnbm", "impor", "norma", "denda"}
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "calculator")
	e := s.engine

	switch name {
	case "pph21":
		var req WageRequest
		if s.bind(w, r, &req) {
			res := e.AnnualWage(req.input())
			s.respond(w, name, res, res)
		}
	case "pesangon", "pensiun":
		var req LumpSumRequest
		if s.bind(w, r, &req) {
			res := e.Severance(calculation.LumpSumInput{Amount: req.Amount})
			if name == "pensiun" {
				res = e.RetirementPayout(calculation.LumpSumInput{Amount: req.Amount})
			}
			s.respond(w, name, res, res)
		}
	case "pph23":
		var req WithholdingRequest
		if s.bind(w, r, &req) {
			res := e.Withholding(req.input())
			s.respond(w, name, res, res)
		}
	case "final":
		var req FinalRequest
		if s.bind(w, r, &req) {
			res := e.Final(req.input())
			s.respond(w, name, res, res)
		}
	case "umkm":
		var req SmallBusinessRequest
		if s.bind(w, r, &req) {
			res := e.SmallBusiness(calculation.SmallBusinessInput{Turnover: req.Turnover, PriorTurnover: req.PriorTurnover})
			s.respond(w, name, res, res)
		}
	case "investasi":
		var req InvestmentRequest
		if s.bind(w, r, &req) {
			res := e.Investment(req.input())
			s.respond(w, name, res, res)
		}
	case "ppn":
		var req VATRequest
		if s.bind(w, r, &req) {
			res := e.VAT(calculation.VATInput{Price: req.Price, Inclusive: req.Inclusive, OtherValue: req.OtherValue})
			s.respond(w, name, res, res)
		}
	case "ppnbm":
		var req LuxuryRequest
		if s.bind(w, r, &req) {
			res := e.Luxury(req.input())
			s.respond(w, name, res, res)
		}
	case "impor":
		var req ImportRequest
		if s.bind(w, r, &req) {
			res := e.Import(req.input())
			s.respond(w, name, res, res)
		}
	case "norma":
		var req NormRequest
		if s.bind(w, r, &req) {
			res := e.ProfessionalNorm(req.input())
			s.respond(w, name, res, res)
		}
	case "denda":
		var req PenaltyRequest
		if s.bind(w, r, &req) {
			pr := e.CalculatePenalty(req.input())
			s.respond(w, name, pr.Result, pr)
		}
	default:
		notFound(w, fmt.Sprintf("unknown calculator %q", name))
	}
}

func (s *Server) rates(w http.ResponseWriter, r *http.Request) {
	success(w, "", s.engine.Regulation)
}

func (s *Server) compareProfiles(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.bind(w, r, &req) {
		return
	}
	profiles := make([]compare.Profile, 0, len(req.Profiles))
	for _, p := range req.Profiles {
		profiles = append(profiles, p.profile())
	}

	if len(req.With) > 0 {
		base := profiles[0]
		if req.Base != "" {
			p, ok := lo.Find(profiles, func(p compare.Profile) bool { return p.ProfileName() == req.Base })
			if !ok {
				badRequest(w, fmt.Sprintf("base profile %q not found", req.Base))
				return
			}
			base = p
		}
		alternatives, err := transform.BuildAlternatives(base, s.templates, req.With)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		profiles = alternatives
	}

	set, err := s.compare.Compare(profiles)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	for _, res := range set.Results {
		s.metrics.ObserveComputation("compare", res.Result)
	}
	success(w, uuid.NewString(), set)
}

func (s *Server) project(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !s.bind(w, r, &req) {
		return
	}

	proj, err := s.compare.Project(req.Profile.profile(), req.parameters())
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	for _, y := range proj.Years {
		s.metrics.ObserveComputation("project", y.Result)
	}
	success(w, uuid.NewString(), proj)
}

func (s *Server) grossUp(w http.ResponseWriter, r *http.Request) {
	var req GrossUpRequest
	if !s.bind(w, r, &req) {
		return
	}
	profiles := lo.Map(req.Profiles, func(p ProfileRequest, _ int) compare.Profile { return p.profile() })

	mr, err := breakeven.NewDefaultSolver(s.engine).SolveAll(r.Context(), profiles, breakeven.Metric(req.Metric), req.Target)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	for _, res := range mr.Results {
		s.metrics.ObserveComputation("grossup", res.Scenario.Result)
	}
	success(w, uuid.NewString(), mr)
}
