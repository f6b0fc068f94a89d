package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/storefront/internal/catalog"
	"github.com/sells-group/storefront/internal/config"
	"github.com/sells-group/storefront/internal/storefront"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront view over HTTP for a browser front-end",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		shop, err := newShop(cfg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newRouter(shop, cfg.Server),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)

		// The one catalog fetch runs alongside the listener; requests made
		// before it finishes see StatusLoading.
		g.Go(func() error {
			return shop.Start(gctx)
		})

		g.Go(func() error {
			zap.L().Info("starting server",
				zap.Int("port", cfg.Server.Port),
				zap.String("session_id", shop.SessionID()),
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})

		// Graceful shutdown
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

type viewResponse struct {
	SessionID string          `json:"session_id"`
	CartCount int             `json:"cart_count"`
	View      storefront.View `json:"view"`
}

// newRouter exposes the shop's render boundary: the current view, the
// query/reset actions, single products, and the cart counter.
func newRouter(shop *storefront.Shop, sc config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if sc.RateLimit > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(sc.RateLimit), sc.RateBurst)))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"catalog": shop.View().Status.String(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/view", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, newViewResponse(shop, shop.View()))
		})

		// GET never changes the session query; PUT /api/query does.
		r.Get("/products", func(w http.ResponseWriter, r *http.Request) {
			v := shop.View()
			if r.URL.Query().Has("q") {
				v = shop.Preview(r.URL.Query().Get("q"))
			}
			writeJSON(w, http.StatusOK, newViewResponse(shop, v))
		})

		r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid product id")
				return
			}
			p, err := shop.Product(r.Context(), id)
			if err != nil {
				zap.L().Warn("product lookup failed", zap.Int64("product_id", id), zap.Error(err))
				writeError(w, productErrorStatus(err), err.Error())
				return
			}
			writeJSON(w, http.StatusOK, p)
		})

		r.Put("/query", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Query string `json:"query"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			writeJSON(w, http.StatusOK, newViewResponse(shop, shop.Search(req.Query)))
		})

		r.Post("/query/reset", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, newViewResponse(shop, shop.Reset()))
		})

		r.Get("/cart", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]int{"count": shop.CartCount()})
		})

		r.Post("/cart", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				ProductID *int64 `json:"product_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == nil {
				writeError(w, http.StatusBadRequest, "product_id is required")
				return
			}
			n, err := shop.AddToCart(*req.ProductID)
			if err != nil {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]int{"count": n})
		})
	})

	return r
}

func newViewResponse(shop *storefront.Shop, v storefront.View) viewResponse {
	return viewResponse{
		SessionID: shop.SessionID(),
		CartCount: shop.CartCount(),
		View:      v,
	}
}

// productErrorStatus maps a product lookup failure to a response status.
func productErrorStatus(err error) int {
	var fe *catalog.FetchError
	if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func rateLimit(lim *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
