package web

import (
	"time"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"freeai/internal/catalog"
)

// progressInterval is how often a watched task emits a task:progress event.
const progressInterval = 500 * time.Millisecond

// MountSocket attaches a Socket.IO server that streams simulated task
// progress. Clients emit "task:watch" with a task id and receive periodic
// "task:progress" events until the task completes.
func (srv *Server) MountSocket(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	io.OnEvent("/", "task:watch", func(s socketio.Conn, payload struct {
		TaskID string `json:"taskId"`
	}) map[string]any {
		st, err := srv.Tracker.Status(payload.TaskID)
		if err != nil {
			s.Emit("error", map[string]any{"code": "task_not_found", "message": "Task not found"})
			return map[string]any{"ok": false}
		}
		log.Info().Str("sid", s.ID()).Str("taskId", payload.TaskID).Msg("task:watch")
		go srv.streamProgress(s, payload.TaskID)
		s.Emit("task:progress", st)
		return map[string]any{"ok": true}
	})

	io.OnError("/", func(s socketio.Conn, err error) {
		log.Warn().Err(err).Msg("socket error")
	})

	go func() {
		if err := io.Serve(); err != nil {
			log.Error().Err(err).Msg("socket.io serve")
		}
	}()
	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	return io
}

func (srv *Server) streamProgress(s socketio.Conn, taskID string) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for range ticker.C {
		st, err := srv.Tracker.Status(taskID)
		if err != nil {
			return
		}
		s.Emit("task:progress", st)
		if st.State == catalog.StateCompleted {
			return
		}
	}
}
