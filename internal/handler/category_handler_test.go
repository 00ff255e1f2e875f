package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	env := newTestEnv()

	t.Run("all", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/v1/categories", "")

		require.NoError(t, env.categories.ListCategories(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response CategoryListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Len(t, response.Data, 3)
	})

	t.Run("filtered by type", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/v1/categories?type=income", "")

		require.NoError(t, env.categories.ListCategories(c))

		var response CategoryListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, "Salary", response.Data[0].Name)
	})

	t.Run("invalid type", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/v1/categories?type=transfer", "")

		require.NoError(t, env.categories.ListCategories(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		env := newTestEnv()
		c, rec := newContext(http.MethodPost, "/api/v1/categories", `{"name":" Pets ","type":"expense"}`)

		require.NoError(t, env.categories.CreateCategory(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created domain.Category
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, int32(4), created.ID)
		assert.Equal(t, "Pets", created.Name)
		assert.Equal(t, domain.TransactionTypeExpense, created.Type)
		assert.Contains(t, env.categoryRepo.Categories, int32(4))
	})

	t.Run("missing name", func(t *testing.T) {
		env := newTestEnv()
		c, rec := newContext(http.MethodPost, "/api/v1/categories", `{"name":"","type":"income"}`)

		require.NoError(t, env.categories.CreateCategory(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var problem ProblemDetails
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		require.Len(t, problem.Errors, 1)
		assert.Equal(t, "name", problem.Errors[0].Field)
		assert.Len(t, env.categoryRepo.Categories, 3)
	})

	t.Run("invalid type", func(t *testing.T) {
		env := newTestEnv()
		c, rec := newContext(http.MethodPost, "/api/v1/categories", `{"name":"Transfers","type":"transfer"}`)

		require.NoError(t, env.categories.CreateCategory(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv()
		c, rec := newContext(http.MethodPost, "/api/v1/categories", `{"name":`)

		require.NoError(t, env.categories.CreateCategory(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
