package ws

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/plasmaglow/internal/control"
	diag "github.com/coreman2200/plasmaglow/internal/diagnostics"
)

// Command is one console request, e.g. {"cmd":"set_scene","n":3}.
type Command struct {
	Cmd string `json:"cmd"`
	N   *int   `json:"n,omitempty"`
}

// Reply answers every command with the resulting status.
type Reply struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error,omitempty"`
	Status *control.Status `json:"status,omitempty"`
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			writeJSON(conn, Reply{Error: "malformed command"})
			continue
		}
		writeJSON(conn, s.Exec(cmd))
	}
}

// Exec runs cmd against the controller.
func (s *State) Exec(cmd Command) Reply {
	log.Debug().Str("cmd", cmd.Cmd).Msg("console command")
	var err error
	switch cmd.Cmd {
	case "set_scene":
		if cmd.N == nil {
			err = fmt.Errorf("set_scene needs n")
			break
		}
		if err = s.ctl.SetScene(*cmd.N); err != nil {
			s.Push(diag.Diagnostic{
				Severity: diag.Warn, Code: diag.SceneRejected, Summary: "Scene request rejected",
				Detail: err.Error(), Evidence: map[string]any{"n": *cmd.N},
			})
		}
	case "next_scene":
		s.ctl.NextScene()
	case "set_brightness":
		if cmd.N == nil {
			err = fmt.Errorf("set_brightness needs n")
			break
		}
		s.ctl.SetBrightness(*cmd.N)
	case "next_brightness":
		s.ctl.NextBrightness()
	case "get_status":
	default:
		err = fmt.Errorf("unknown command %q", cmd.Cmd)
	}
	st := s.ctl.Status()
	if err != nil {
		return Reply{Error: err.Error(), Status: &st}
	}
	return Reply{OK: true, Status: &st}
}
