package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dourado/config"
	"dourado/internal/auth"
	"dourado/internal/discovery"
	"dourado/internal/game/deck"
	"dourado/internal/game/manager"
	"dourado/internal/middleware"
	"dourado/internal/persist"
	"dourado/internal/ranking"
	"dourado/internal/room"
	"dourado/internal/storage"
	"dourado/internal/utils"
	"dourado/internal/websocket"
)

func main() {
	config.Load()
	ctx := context.Background()

	//-------------------------------------------------------
	// 1. Storage: redis (ranking) + postgres (match records)
	//-------------------------------------------------------
	if err := storage.InitRedis(
		ctx,
		config.C.Redis.Addr,
		config.C.Redis.Password,
		config.C.Redis.DB,
	); err != nil {
		utils.Print.Fatal("redis init failed", "err", err)
	}

	sinks := persist.Multi{persist.NewCSVSink(config.C.Persist.CSVPath)}
	if config.C.Database.DSN != "" {
		if err := storage.InitPostgres(ctx, config.C.Database.DSN); err != nil {
			utils.Print.Error("postgres init failed, csv only", "err", err)
		} else {
			pg := persist.NewPostgresSink(storage.DB)
			if err := pg.EnsureSchema(ctx); err != nil {
				utils.Print.Fatal("schema init failed", "err", err)
			}
			sinks = append(sinks, pg)
		}
	}

	//-------------------------------------------------------
	// 2. Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//-------------------------------------------------------
	// 3. Hub (must run before anything can broadcast)
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()

	//-------------------------------------------------------
	// 4. Ledger, registry, game manager
	//-------------------------------------------------------
	ledger := ranking.NewLedger(ranking.NewRedisRepo(storage.Rdb))
	registry := room.NewRegistry()

	gameMgr := manager.NewGameManager(
		hub, registry, ledger, sinks,
		deck.NewFactory(time.Now().UnixNano()),
		time.Duration(config.C.Game.BotDelayMS)*time.Millisecond,
	)

	registry.OnRoomReady = func(rm *room.Room) {
		utils.Print.Info("room ready", "room", rm.ID, "players", rm.Match.SeatNames())
		if err := gameMgr.StartRoom(rm); err != nil {
			utils.Print.Error("start room failed", "room", rm.ID, "err", err)
		}
	}

	registry.OnSeatAbandoned = gameMgr.TakeOverSeat

	hub.OnIncoming = gameMgr.HandlePlayerMessage

	//-------------------------------------------------------
	// 5. UDP discovery
	//-------------------------------------------------------
	if resp, err := discovery.NewResponder(config.C.Discovery.Port, config.C.Server.Port); err != nil {
		utils.Print.Error("discovery disabled", "err", err)
	} else {
		go resp.Serve()
	}

	//-------------------------------------------------------
	// 6. Routes
	//-------------------------------------------------------
	authGroup := r.Group("/auth")
	{
		ah := auth.NewHandler()
		authGroup.POST("/login", ah.Login)
	}

	secret := []byte(config.C.JWT.Secret)
	authed := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		authed.GET("/ws", websocket.ServeWS(hub))

		rh := room.NewHandler(registry)
		authed.POST("/room/join", rh.Join)
		authed.POST("/room/leave", rh.Leave)

		kh := ranking.NewHandler(ledger)
		authed.GET("/ranking", kh.Top)
	}

	//-------------------------------------------------------
	// 7. Serve
	//-------------------------------------------------------
	utils.Print.Info("server running", "port", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Print.Fatal("server stopped", "err", err)
	}
}
