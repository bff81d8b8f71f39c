// engage-cloud: engagement scoring service for video calls.
// Accepts WebSocket connections from call clients and streams back per-room
// engagement updates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/engageiq/go-engage/internal/config"
	"github.com/engageiq/go-engage/internal/log"
	"github.com/engageiq/go-engage/pkg/analyze"
	"github.com/engageiq/go-engage/pkg/engage"
	"github.com/engageiq/go-engage/pkg/notify"
	"github.com/engageiq/go-engage/pkg/session"
)

var (
	version = "1.0.0"
	addr    = flag.String("addr", config.DefaultAddr, "HTTP listen address")
	debug   = flag.Bool("debug", false, "Enable debug logging")
	cascade = flag.String("cascade", "", "Haar cascade file for server-side person detection")
	weights = flag.String("weights", "", "Fusion weights: context,emotion,body,speech,participation")
)

func main() {
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	log.Init(level)

	listenAddr := config.Addr(*addr)

	weightSpec := *weights
	if weightSpec == "" {
		weightSpec = config.Weights()
	}
	w, err := engage.ParseWeights(weightSpec)
	if err != nil {
		log.Error("invalid fusion weights", "spec", weightSpec, "err", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("📊 Engage Cloud v" + version)
	fmt.Println("   Video call engagement scoring service")
	fmt.Println()

	collab := session.Collaborators{}

	if *cascade != "" {
		detector, err := analyze.NewHaar(analyze.HaarConfig{
			CascadePath:  *cascade,
			ScaleFactor:  1.1,
			MinNeighbors: 5,
			MinSize:      30,
		})
		if err != nil {
			log.Error("load cascade", "path", *cascade, "err", err)
			os.Exit(1)
		}
		defer detector.Close()
		collab.Detector = detector
		log.Info("server-side detection enabled", "cascade", *cascade)
	}

	if config.WebhookEnabled() {
		collab.Sink = notify.NewWebhook(config.WebhookURL(), notify.DefaultWebhookTimeout)
		log.Info("webhook notifications enabled",
			"url", config.WebhookURL(), "interval", config.WebhookInterval())
	}

	sessionCfg := session.DefaultConfig()
	sessionCfg.NotifyInterval = config.WebhookInterval()

	hub := session.NewHub(sessionCfg, engage.New(w), collab)

	app := fiber.New(fiber.Config{
		AppName:               "engage-cloud",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	if *debug {
		app.Use(fiberlogger.New())
	}

	hub.RegisterRoutes(app)

	api := app.Group("/api")
	hub.RegisterAPIRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"version":  version,
			"sessions": hub.ClientCount(),
		})
	})

	app.Get("/metrics", func(c *fiber.Ctx) error {
		stats := hub.GetStats()
		return c.SendString(fmt.Sprintf(`# HELP engage_sessions Connected session count
# TYPE engage_sessions gauge
engage_sessions %d

# HELP engage_messages_received Total messages received
# TYPE engage_messages_received counter
engage_messages_received %d

# HELP engage_messages_sent Total messages sent
# TYPE engage_messages_sent counter
engage_messages_sent %d

# HELP engage_updates_sent Total engagement updates sent
# TYPE engage_updates_sent counter
engage_updates_sent %d
`, stats.ClientCount, stats.MessagesReceived, stats.MessagesSent, stats.UpdatesSent))
	})

	go func() {
		log.Info("starting server", "addr", listenAddr)
		log.Info("endpoints",
			"websocket", "/ws/session",
			"health", "/health",
			"sessions", "/api/sessions")

		if err := app.Listen(listenAddr); err != nil {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}
