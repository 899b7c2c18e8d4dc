package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type actionResponse struct {
	ActionResult
	Account *AccountCreated `json:"account,omitempty"`
	State   State           `json:"state"`
}

type operatorRequest struct {
	OperatorID  string `json:"operatorId"`
	OperatorKey string `json:"operatorKey"`
}

type accountRequest struct {
	AccountID  string `json:"accountId"`
	PrivateKey string `json:"privateKey"`
}

type tokenIDRequest struct {
	TokenID string `json:"tokenId"`
}

type handlers struct {
	dashboard *Dashboard
}

func (h *handlers) respond(ctx echo.Context, result ActionResult, account *AccountCreated) error {
	code := http.StatusOK
	switch result.Outcome {
	case OutcomeInvalid:
		code = http.StatusBadRequest
	case OutcomeFailed:
		code = http.StatusBadGateway
	}
	return ctx.JSON(code, actionResponse{
		ActionResult: result,
		Account:      account,
		State:        h.dashboard.State(),
	})
}

func (h *handlers) GetState(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, h.dashboard.State())
}

func (h *handlers) PutOperator(ctx echo.Context) error {
	var request operatorRequest
	if err := ctx.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result := h.dashboard.SetOperator(ctx.Request().Context(), request.OperatorID, request.OperatorKey)
	return h.respond(ctx, result, nil)
}

func (h *handlers) DeleteOperator(ctx echo.Context) error {
	return h.respond(ctx, h.dashboard.ClearOperator(ctx.Request().Context()), nil)
}

func (h *handlers) PutAccount(ctx echo.Context) error {
	var request accountRequest
	if err := ctx.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result := h.dashboard.SetAccount(ctx.Request().Context(), request.AccountID, request.PrivateKey)
	return h.respond(ctx, result, nil)
}

func (h *handlers) PutToken(ctx echo.Context) error {
	var request tokenIDRequest
	if err := ctx.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.respond(ctx, h.dashboard.SetToken(ctx.Request().Context(), request.TokenID), nil)
}

func (h *handlers) RefreshBalances(ctx echo.Context) error {
	return h.respond(ctx, h.dashboard.RefreshBalances(ctx.Request().Context()), nil)
}

func (h *handlers) CreateAccount(ctx echo.Context) error {
	result, account := h.dashboard.CreateAccount(ctx.Request().Context())
	return h.respond(ctx, result, account)
}

func (h *handlers) CreateToken(ctx echo.Context) error {
	var request TokenRequest
	if err := ctx.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.respond(ctx, h.dashboard.CreateToken(ctx.Request().Context(), request), nil)
}

func (h *handlers) Associate(ctx echo.Context) error {
	var request AssociationRequest
	if err := ctx.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.respond(ctx, h.dashboard.Associate(ctx.Request().Context(), request), nil)
}

func (h *handlers) TransferHbar(ctx echo.Context) error {
	var request HbarTransferRequest
	if err := ctx.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.respond(ctx, h.dashboard.SendHbar(ctx.Request().Context(), request), nil)
}

func (h *handlers) TransferToken(ctx echo.Context) error {
	var request TokenTransferRequest
	if err := ctx.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.respond(ctx, h.dashboard.SendToken(ctx.Request().Context(), request), nil)
}

func (h *handlers) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
