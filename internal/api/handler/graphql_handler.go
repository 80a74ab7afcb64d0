package handler

import (
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"

	"github.com/blogql/blog-api/internal/api/gql"
	"github.com/blogql/blog-api/internal/api/metrics"
)

type GraphQLHandler struct {
	schema *graphql.Schema
}

func NewGraphQLHandler(schema *graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

type graphqlRequest struct {
	Query         string         `json:"query" validate:"required"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data   map[string]any   `json:"data,omitempty"`
	Errors []map[string]any `json:"errors,omitempty"`
}

// Serve executes a GraphQL document.
//
// @Summary      Execute a GraphQL operation
// @Description  Runs a query or mutation. Send "Authorization: Bearer <token>" for mutations other than signup and login.
// @Tags         graphql
// @Accept       json
// @Produce      json
// @Param        body  body      graphqlRequest   true  "GraphQL request"
// @Success      200   {object}  graphqlResponse
// @Failure      400   {object}  graphqlResponse
// @Failure      401   {object}  graphqlResponse
// @Failure      500   {object}  graphqlResponse
// @Router       /graphql [post]
func (h *GraphQLHandler) Serve(c echo.Context) error {
	var req graphqlRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gql.ErrorResponse(&gql.Error{
			Code:    gql.CodeBadUserInput,
			Message: "invalid payload",
		}))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, gql.ErrorResponse(&gql.Error{
			Code:    gql.CodeBadUserInput,
			Message: err.Error(),
		}))
	}

	resp := h.schema.Exec(c.Request().Context(), req.Query, req.OperationName, req.Variables)

	op := req.OperationName
	if op == "" {
		op = "anonymous"
	}
	result := "ok"
	if len(resp.Errors) > 0 {
		result = "error"
	}
	metrics.GraphQLOperationsTotal.WithLabelValues(op, result).Inc()

	return c.JSON(http.StatusOK, resp)
}
