package service

import (
	"context"
	"math"
	"time"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/logger"
	"kitchen_lab/internal/models"
)

type ControlsService struct {
	session *appliance.Session
	log     *logger.Logger
}

func NewControlsService(session *appliance.Session, log *logger.Logger) *ControlsService {
	if log == nil {
		log = logger.Nop()
	}
	return &ControlsService{session: session, log: log}
}

// Ingest clamps the raw reading to [0, capacity] before handing it to the
// session. This is the input-source side of the scale contract.
func (s *ControlsService) Ingest(ctx context.Context, channel string, grams float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := appliance.ChannelID(channel)
	capacity, err := s.session.Capacity(id)
	if err != nil {
		return err
	}
	if math.IsNaN(grams) {
		grams = 0
	}
	return s.session.Ingest(id, math.Min(math.Max(grams, 0), capacity))
}

func (s *ControlsService) Tare(ctx context.Context, channel string) (models.ActionResult, error) {
	return s.runErr(ctx, "tare", func() (appliance.Result, error) {
		return s.session.Tare(appliance.ChannelID(channel))
	})
}

func (s *ControlsService) TareAll(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "tare_all", s.session.TareAll)
}

func (s *ControlsService) TogglePower(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "toggle_power", s.session.TogglePower)
}

func (s *ControlsService) ToggleMute(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "toggle_mute", s.session.ToggleMute)
}

func (s *ControlsService) SetStandby(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "set_standby", s.session.SetStandby)
}

func (s *ControlsService) AdvanceMode(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "advance_mode", s.session.AdvanceMode)
}

func (s *ControlsService) SelectRecipe(ctx context.Context, name string) (models.ActionResult, error) {
	return s.runErr(ctx, "select_recipe", func() (appliance.Result, error) {
		return s.session.SelectRecipe(name)
	})
}

func (s *ControlsService) SetBase(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "set_base", s.session.SetBase)
}

func (s *ControlsService) AddFood(ctx context.Context, name string) (models.ActionResult, error) {
	return s.runErr(ctx, "add_food", func() (appliance.Result, error) {
		return s.session.AddFood(name)
	})
}

func (s *ControlsService) ClearLedger(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "clear_ledger", s.session.ClearLedger)
}

func (s *ControlsService) StartCountUp(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "start_count_up", s.session.StartCountUp)
}

func (s *ControlsService) StartCountdown(ctx context.Context, minutes int) (models.ActionResult, error) {
	return s.runErr(ctx, "start_countdown", func() (appliance.Result, error) {
		return s.session.StartCountdown(minutes)
	})
}

func (s *ControlsService) PauseTimer(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "pause_timer", s.session.PauseTimer)
}

func (s *ControlsService) ResumeTimer(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "resume_timer", s.session.ResumeTimer)
}

func (s *ControlsService) ResetTimer(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "reset_timer", s.session.ResetTimer)
}

func (s *ControlsService) ToggleTimerMenu(ctx context.Context) (models.ActionResult, error) {
	return s.run(ctx, "toggle_timer_menu", s.session.ToggleTimerMenu)
}

func (s *ControlsService) run(ctx context.Context, action string, op func() appliance.Result) (models.ActionResult, error) {
	return s.runErr(ctx, action, func() (appliance.Result, error) { return op(), nil })
}

func (s *ControlsService) runErr(ctx context.Context, action string, op func() (appliance.Result, error)) (models.ActionResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ActionResult{}, err
	}
	res, err := op()
	if err != nil {
		s.log.Debugw("action_rejected", "action", action, "err", err)
		return models.ActionResult{}, err
	}
	s.log.Debugw("action", "action", action, "outcome", res.Outcome.String())
	return toActionResult(res), nil
}

func toActionResult(res appliance.Result) models.ActionResult {
	out := models.ActionResult{Outcome: res.Outcome.String()}
	if n := res.Notice; n != nil {
		out.Notification = &models.Notification{
			OccurredAt: time.Now().UTC(),
			Severity:   n.Severity.String(),
			Message:    n.Message,
			Metadata:   metadataOrNil(n.Metadata),
		}
	}
	return out
}

// metadataOrNil keeps an empty map from rendering as {} in JSON.
func metadataOrNil(m map[string]any) any {
	if len(m) == 0 {
		return nil
	}
	return m
}
