package handlers

import (
	"context"
	"errors"
	"net/http"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetState        = "failed to load state"
	errGetCatalog      = "failed to load catalog"
	errActionFailed    = "action failed"
	errInvalidBodyPref = "invalid body: "
)

// Request DTOs.
type rawRequest struct {
	Channel string   `json:"channel" binding:"required" example:"main"`
	Value   *float64 `json:"value" binding:"required" example:"512.4"`
}

type channelRequest struct {
	Channel string `json:"channel" binding:"required" example:"sub"`
}

type nameRequest struct {
	Name string `json:"name" binding:"required" example:"Ciabatta"`
}

type countdownRequest struct {
	Minutes int `json:"minutes" binding:"required" example:"5"`
}

// ActionResponse documents the body of every control endpoint.
type ActionResponse struct {
	Outcome      string                 `json:"outcome" example:"applied"`
	Notification *models.Notification   `json:"notification,omitempty"`
	State        *models.ApplianceState `json:"state,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

func isCallerError(err error) bool {
	for _, target := range []error{
		appliance.ErrUnknownChannel,
		appliance.ErrUnknownRecipe,
		appliance.ErrUnknownFood,
		appliance.ErrInvalidDuration,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// runAction executes op and writes the outcome. Caller errors are 400, a
// missing load is 422, everything else the session accepted is 200.
func (h *Handler) runAction(c *gin.Context, logKey string, op func(ctx context.Context) (models.ActionResult, error)) {
	ctx := c.Request.Context()
	res, err := op(ctx)
	switch {
	case isCallerError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errActionFailed, logKey, err)
		return
	}

	resp := ActionResponse{Outcome: res.Outcome, Notification: res.Notification}
	if h.services.Monitoring != nil {
		if st, err := h.services.Monitoring.GetState(ctx); err == nil {
			resp.State = &st
		}
	}
	code := http.StatusOK
	if res.Outcome == appliance.OutcomePreconditionNotMet.String() {
		code = http.StatusUnprocessableEntity
		if res.Notification != nil {
			resp.Error = res.Notification.Message
		}
	}
	c.JSON(code, resp)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Appliance snapshot
// @Description  Scales, mode, bread and diet readouts, timer and the active notification.
// @Tags         state
// @Produce      json
// @Success      200  {object}  models.ApplianceState
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/state [get]
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Catalog
// @Description  Recipes, foods (per 100 g) and countdown presets.
// @Tags         state
// @Produce      json
// @Success      200  {object}  models.CatalogView
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/catalog [get]
func (h *Handler) getCatalog(c *gin.Context) {
	cat, err := h.services.Catalog.GetCatalog(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetCatalog, "get_catalog_failed", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// @Summary      Feed a raw reading
// @Description  Sensor input for one channel. Values are clamped to [0, capacity]. Works while powered off.
// @Tags         scale
// @Accept       json
// @Produce      json
// @Param        body  body  rawRequest  true  "Channel and grams"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/scale/raw [post]
func (h *Handler) ingestRaw(c *gin.Context) {
	var req rawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Controls.Ingest(c.Request.Context(), req.Channel, *req.Value); err != nil {
		if isCallerError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errActionFailed, "ingest_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Tare one channel
// @Tags         scale
// @Accept       json
// @Produce      json
// @Param        body  body  channelRequest  true  "Channel"
// @Success      200  {object}  ActionResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/scale/tare [post]
func (h *Handler) tare(c *gin.Context) {
	var req channelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.runAction(c, "tare_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.Tare(ctx, req.Channel)
	})
}

// @Summary      Tare every channel
// @Tags         scale
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/scale/tare-all [post]
func (h *Handler) tareAll(c *gin.Context) {
	h.runAction(c, "tare_all_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.TareAll(ctx)
	})
}

// @Summary      Toggle power
// @Description  Powering on zeroes every channel.
// @Tags         power
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/power/toggle [post]
func (h *Handler) togglePower(c *gin.Context) {
	h.runAction(c, "toggle_power_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.TogglePower(ctx)
	})
}

// @Summary      Toggle mute
// @Tags         power
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/power/mute [post]
func (h *Handler) toggleMute(c *gin.Context) {
	h.runAction(c, "toggle_mute_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.ToggleMute(ctx)
	})
}

// @Summary      Extend standby
// @Description  Acknowledged with a notification; no standby countdown exists.
// @Tags         power
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/power/standby [post]
func (h *Handler) setStandby(c *gin.Context) {
	h.runAction(c, "set_standby_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.SetStandby(ctx)
	})
}

// @Summary      Advance mode
// @Description  HIDDEN -> DIET -> BREAD -> HIDDEN. Clears the bread base and closes the timer menu.
// @Tags         mode
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/mode/advance [post]
func (h *Handler) advanceMode(c *gin.Context) {
	h.runAction(c, "advance_mode_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.AdvanceMode(ctx)
	})
}

// @Summary      Select bread recipe
// @Tags         bread
// @Accept       json
// @Produce      json
// @Param        body  body  nameRequest  true  "Recipe name"
// @Success      200  {object}  ActionResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/bread/recipe [post]
func (h *Handler) selectRecipe(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.runAction(c, "select_recipe_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.SelectRecipe(ctx, req.Name)
	})
}

// @Summary      Lock flour base
// @Description  BREAD mode only. Captures the main channel's net weight.
// @Tags         bread
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Failure      422  {object}  ActionResponse
// @Router       /api/v1/bread/base [post]
func (h *Handler) setBase(c *gin.Context) {
	h.runAction(c, "set_base_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.SetBase(ctx)
	})
}

// @Summary      Add food to the ledger
// @Description  DIET mode only. Weighs the food, adds its macros and zeroes the supplying channel.
// @Tags         diet
// @Accept       json
// @Produce      json
// @Param        body  body  nameRequest  true  "Food name"
// @Success      200  {object}  ActionResponse
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  ActionResponse
// @Router       /api/v1/diet/food [post]
func (h *Handler) addFood(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.runAction(c, "add_food_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.AddFood(ctx, req.Name)
	})
}

// @Summary      Clear today's log
// @Tags         diet
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/diet/clear [post]
func (h *Handler) clearLedger(c *gin.Context) {
	h.runAction(c, "clear_ledger_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.ClearLedger(ctx)
	})
}

// @Summary      Start or resume the count-up timer
// @Tags         timer
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/timer/count-up [post]
func (h *Handler) startCountUp(c *gin.Context) {
	h.runAction(c, "start_count_up_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.StartCountUp(ctx)
	})
}

// @Summary      Start a countdown
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body  countdownRequest  true  "Whole minutes, > 0"
// @Success      200  {object}  ActionResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/timer/countdown [post]
func (h *Handler) startCountdown(c *gin.Context) {
	var req countdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.runAction(c, "start_countdown_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.StartCountdown(ctx, req.Minutes)
	})
}

// @Summary      Pause the timer
// @Tags         timer
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/timer/pause [post]
func (h *Handler) pauseTimer(c *gin.Context) {
	h.runAction(c, "pause_timer_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.PauseTimer(ctx)
	})
}

// @Summary      Resume the timer
// @Tags         timer
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/timer/resume [post]
func (h *Handler) resumeTimer(c *gin.Context) {
	h.runAction(c, "resume_timer_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.ResumeTimer(ctx)
	})
}

// @Summary      Reset the timer
// @Tags         timer
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/timer/reset [post]
func (h *Handler) resetTimer(c *gin.Context) {
	h.runAction(c, "reset_timer_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.ResetTimer(ctx)
	})
}

// @Summary      Toggle the timer settings view
// @Tags         timer
// @Produce      json
// @Success      200  {object}  ActionResponse
// @Router       /api/v1/timer/menu [post]
func (h *Handler) toggleTimerMenu(c *gin.Context) {
	h.runAction(c, "toggle_timer_menu_failed", func(ctx context.Context) (models.ActionResult, error) {
		return h.services.Controls.ToggleTimerMenu(ctx)
	})
}
