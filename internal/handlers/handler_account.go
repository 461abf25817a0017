package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
	"github.com/SscSPs/bank_api/internal/dto"
	"github.com/SscSPs/bank_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles registration, listing, balance and deletion.
type accountHandler struct {
	credentialService portssvc.CredentialSvcFacade
	accountService    portssvc.AccountSvcFacade
}

func newAccountHandler(cs portssvc.CredentialSvcFacade, as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		credentialService: cs,
		accountService:    as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(r gin.IRoutes, cs portssvc.CredentialSvcFacade, as portssvc.AccountSvcFacade, enableDelete bool) {
	h := newAccountHandler(cs, as)

	r.POST("/register", h.register)
	r.GET("/users", h.listUsers)
	r.POST("/balance", h.balance)
	if enableDelete {
		r.DELETE("/delete", h.deleteUser)
	}
}

// register godoc
// @Summary Register a new account
// @Description Creates an account with zero balance and zero debt
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   credentials body dto.CredentialsRequest true "Username and password"
// @Success 200 {object} dto.StatusResponse "200 signed up or 301 username already used"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /register [post]
func (h *accountHandler) register(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindRequest(c, &req, "register") {
		return
	}

	status, err := h.credentialService.Register(c.Request.Context(), *req.Username, *req.Password)
	if err != nil {
		respondError(c, err, "register")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Register handled",
		slog.String("username", *req.Username), slog.Int("status", status.Code()))
	respondStatus(c, *req.Username, status)
}

// listUsers godoc
// @Summary List registered usernames
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [get]
func (h *accountHandler) listUsers(c *gin.Context) {
	usernames, err := h.accountService.ListUsernames(c.Request.Context())
	if err != nil {
		respondError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(usernames))
}

// balance godoc
// @Summary Get the balance of an account
// @Description Returns Username, Own and Debt once the credentials check out
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   credentials body dto.CredentialsRequest true "Username and password"
// @Success 200 {object} dto.BalanceResponse "or a dto.StatusResponse with 301/302"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /balance [post]
func (h *accountHandler) balance(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindRequest(c, &req, "balance") {
		return
	}

	account, status, err := h.accountService.GetBalance(c.Request.Context(), *req.Username, *req.Password)
	if err != nil {
		respondError(c, err, "get balance")
		return
	}
	if account == nil {
		respondStatus(c, *req.Username, status)
		return
	}

	middleware.SetUsername(c, account.Username)
	c.JSON(http.StatusOK, dto.ToBalanceResponse(account))
}

// deleteUser godoc
// @Summary Delete an account
// @Description Removes the account. No credentials are required.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   user body dto.DeleteUserRequest true "Username"
// @Success 200 {object} dto.StatusResponse "200 user deleted or 301 invalid username"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /delete [delete]
func (h *accountHandler) deleteUser(c *gin.Context) {
	var req dto.DeleteUserRequest
	if !bindRequest(c, &req, "delete") {
		return
	}

	status, err := h.accountService.DeleteAccount(c.Request.Context(), *req.Username)
	if err != nil {
		respondError(c, err, "delete user")
		return
	}
	respondStatus(c, *req.Username, status)
}
