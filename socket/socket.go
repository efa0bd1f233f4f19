package socket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"

	"garupa/db"
	"garupa/stores"
	"garupa/utils"
)

// InitSocketIO creates the realtime config feed. Rider apps and admin
// dashboards join the rooms of the regions they display; whenever an
// availability rule or a pricing setting changes, subscribers get a
// configChanged event and re-query the REST API. The feed never carries
// the config payload itself — the REST responses stay the single source
// of truth. Cancelling ctx stops the rebroadcast loop and closes the
// Redis subscription.
func InitSocketIO(ctx context.Context) *socketio.Server {
	opts := &socketio.ServerOptions{}
	opts.SetCors(&types.Cors{
		Origin: "*",
	})

	io := socketio.NewServer(nil, opts)

	io.On("connection", func(clients ...any) {
		socket := clients[0].(*socketio.Socket)
		utils.Logger.Info("Config feed client connected", zap.String("socketID", string(socket.Id())))

		// joinRegion — subscribe to rule changes for one region
		socket.On("joinRegion", func(args ...any) {
			if len(args) == 0 {
				return
			}
			data, ok := args[0].(map[string]any)
			if !ok {
				return
			}
			region, _ := data["region"].(string)
			if region != "" {
				socket.Join(socketio.Room("region:" + region))
				utils.Logger.Info("Client joined region room", zap.String("region", region))
			}
		})

		// leaveRegion — stop watching a region
		socket.On("leaveRegion", func(args ...any) {
			if len(args) == 0 {
				return
			}
			data, ok := args[0].(map[string]any)
			if !ok {
				return
			}
			region, _ := data["region"].(string)
			if region != "" {
				socket.Leave(socketio.Room("region:" + region))
			}
		})

		socket.On("disconnect", func(args ...any) {
			utils.Logger.Info("Config feed client disconnected", zap.String("socketID", string(socket.Id())))
		})
	})

	// Rebroadcast Redis config updates to the affected rooms. Pricing
	// settings are region-independent, so those go to everyone.
	go func() {
		if db.RedisClient == nil {
			utils.Logger.Warn("Redis unavailable, config feed will not receive updates")
			return
		}
		pubsub := stores.SubscribeConfigUpdates(ctx)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event stores.ConfigUpdateEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					utils.Logger.Error("Error unmarshalling config update", zap.Error(err))
					continue
				}

				utils.Logger.Info("Broadcasting config change",
					zap.String("entity", event.Entity),
					zap.String("serviceType", event.ServiceType),
					zap.String("region", event.Region))

				if event.Entity == "rule" && event.Region != "" {
					io.To(socketio.Room("region:"+event.Region)).Emit("configChanged", event)
				} else {
					io.Emit("configChanged", event)
				}
			}
		}
	}()

	return io
}

// GetHandler returns the HTTP handler for Socket.IO
func GetHandler(io *socketio.Server) http.Handler {
	return io.ServeHandler(nil)
}
