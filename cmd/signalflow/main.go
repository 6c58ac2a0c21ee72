package main

import (
	"flag"
	"log"

	"signalflow/conf"
	"signalflow/pkg/db"
	"signalflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// 启动服务（监听webhook信号入口和查询接口）

/*
测试

curl -X POST "http://localhost:8080/api/v1/webhook/chartink?key=STRATEGY_KEY" \
  -H "Content-Type: application/json" \
  -d '{"stocks":"RELIANCE,TCS","alert_name":"Breakout","scan_name":"Intraday","triggered_at":"10:15 am"}'
*/

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	if err := conf.LoadConfig(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := &conf.AppConfig

	logger.InitLogger(&cfg.Log, cfg.AppName)
	defer logger.Sync()

	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	gdb := db.Init(db.Config{
		User:      cfg.Db.Username,
		Password:  cfg.Db.Password,
		Host:      cfg.Db.Host,
		Port:      cfg.Db.Port,
		DBName:    cfg.Db.DbName,
		ParseTime: true,
	})

	apiRouter, cleanup := InitRouter(gdb)

	srv := NewServer(cfg)
	srv.RegisterOnShutdown(cleanup)
	srv.Run(apiRouter)
}
