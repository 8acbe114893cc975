package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"expense_share/internal/api/handlers/expenses"
	"expense_share/internal/api/handlers/ledger"
	"expense_share/internal/api/handlers/users"
	"expense_share/internal/api/middlewares"
	"expense_share/internal/repositories/sqlconnect"
	"expense_share/internal/repositories/store"
	"expense_share/internal/services"
	"expense_share/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	mu          sync.Mutex
	to          []string
	attachments []utils.Attachment
}

func (m *captureMailer) Send(to, _, _ string, attachments ...utils.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.attachments = append(m.attachments, attachments...)
	return nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	mailer  *captureMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqlconnect.ConnectDb(sqlconnect.Config{
		Driver:     sqlconnect.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "api.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlconnect.RunMigrations(context.Background(), db))

	st := store.New(db)
	userSvc := services.NewUserService(st, nil)
	expenseSvc := services.NewExpenseService(st)
	mailer := &captureMailer{}

	mux := MainRouter(Handlers{
		Users:    users.NewHandler(userSvc, 5*time.Second),
		Expenses: expenses.NewHandler(expenseSvc, 5*time.Second),
		Ledger:   ledger.NewHandler(expenseSvc, mailer, "Rs.", 5*time.Second),
		DB:       st,
	})

	return &testServer{
		t:       t,
		handler: middlewares.ApplyMiddlewares(mux, middlewares.Metrics, middlewares.RequestLogger, middlewares.SecurityHeaders),
		mailer:  mailer,
	}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) decode(rec *httptest.ResponseRecorder, wantCode int, data any) envelope {
	s.t.Helper()
	require.Equal(s.t, wantCode, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(s.t, json.Unmarshal(env.Data, data))
	}
	return env
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *testServer) createUser(name, email string) userJSON {
	s.t.Helper()
	body := `{"name":"` + name + `","email":"` + email + `","mobile":"9876543210"}`
	var u userJSON
	env := s.decode(s.do(http.MethodPost, "/users", body), http.StatusCreated, &u)
	assert.Equal(s.t, "success", env.Status)
	return u
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t)

	alice := s.createUser("Alice", "alice@example.com")
	assert.Len(t, alice.ID, 36)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		env := s.decode(s.do(http.MethodPost, "/users", `{"name":"A","email":"alice@example.com","mobile":"9876543210"}`), http.StatusConflict, nil)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		s.decode(s.do(http.MethodPost, "/users", `{"name":"A","email":"a@example.com","mobile":"9876543210","admin":true}`), http.StatusBadRequest, nil)
	})

	t.Run("get and patch", func(t *testing.T) {
		var got userJSON
		s.decode(s.do(http.MethodGet, "/u/"+alice.ID, ""), http.StatusOK, &got)
		assert.Equal(t, alice, got)

		s.decode(s.do(http.MethodPatch, "/u/"+alice.ID, `{"name":"Alicia"}`), http.StatusOK, &got)
		assert.Equal(t, "Alicia", got.Name)
	})

	t.Run("bad and unknown ids", func(t *testing.T) {
		s.decode(s.do(http.MethodGet, "/u/not-a-uuid", ""), http.StatusBadRequest, nil)
		s.decode(s.do(http.MethodGet, "/u/5b0c1f6e-7d7e-4a8e-9a43-2f1a3c7d9e10", ""), http.StatusNotFound, nil)
	})

	t.Run("list", func(t *testing.T) {
		var list []userJSON
		s.decode(s.do(http.MethodGet, "/users", ""), http.StatusOK, &list)
		assert.Len(t, list, 1)
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := s.do(http.MethodDelete, "/u/"+alice.ID, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestExpenseAndBalanceRoutes(t *testing.T) {
	s := newTestServer(t)

	a := s.createUser("Alice", "a@example.com")
	b := s.createUser("Bob", "b@example.com")
	c := s.createUser("Carol", "c@example.com")

	t.Run("equal split", func(t *testing.T) {
		body := `{"name":"Dinner","description":"Friday","amount":300,"split_type":"EQUAL","created_by":"` + a.ID + `",
			"splits":[{"user_id":"` + a.ID + `"},{"user_id":"` + b.ID + `"},{"user_id":"` + c.ID + `"}]}`

		var created struct {
			ID     string `json:"id"`
			Splits []struct {
				UserID string          `json:"user_id"`
				Amount decimal.Decimal `json:"amount"`
			} `json:"splits"`
		}
		s.decode(s.do(http.MethodPost, "/expenses", body), http.StatusCreated, &created)
		require.Len(t, created.Splits, 3)
		for _, sp := range created.Splits {
			assert.True(t, decimal.NewFromInt(100).Equal(sp.Amount))
		}

		var fetched struct {
			Name   string            `json:"name"`
			Splits []json.RawMessage `json:"splits"`
		}
		s.decode(s.do(http.MethodGet, "/expenses/"+created.ID, ""), http.StatusOK, &fetched)
		assert.Equal(t, "Dinner", fetched.Name)
		assert.Len(t, fetched.Splits, 3)
	})

	t.Run("percentage split", func(t *testing.T) {
		body := `{"name":"Cab","amount":"100","split_type":"percentage","created_by":"` + a.ID + `",
			"splits":[{"user_id":"` + a.ID + `","percentage":60},{"user_id":"` + b.ID + `","percentage":40}]}`
		s.decode(s.do(http.MethodPost, "/expenses", body), http.StatusCreated, nil)
	})

	t.Run("exact split mismatch", func(t *testing.T) {
		body := `{"name":"Groceries","amount":45,"split_type":"EXACT","created_by":"` + a.ID + `",
			"splits":[{"user_id":"` + a.ID + `","amount":20},{"user_id":"` + b.ID + `","amount":30}]}`
		env := s.decode(s.do(http.MethodPost, "/expenses", body), http.StatusBadRequest, nil)
		assert.Contains(t, env.Message, "exact splits must sum")
	})

	t.Run("unknown split type", func(t *testing.T) {
		body := `{"name":"X","amount":1,"split_type":"SHARES","created_by":"` + a.ID + `","splits":[{"user_id":"` + a.ID + `"}]}`
		s.decode(s.do(http.MethodPost, "/expenses", body), http.StatusBadRequest, nil)
	})

	t.Run("overall", func(t *testing.T) {
		var overall struct {
			Count          int             `json:"count"`
			TotalExpenses  decimal.Decimal `json:"total_expenses"`
			AverageExpense decimal.Decimal `json:"average_expense"`
		}
		s.decode(s.do(http.MethodGet, "/expenses", ""), http.StatusOK, &overall)
		assert.Equal(t, 2, overall.Count)
		assert.True(t, decimal.NewFromInt(400).Equal(overall.TotalExpenses))
		assert.True(t, decimal.NewFromInt(200).Equal(overall.AverageExpense))
	})

	t.Run("pairwise", func(t *testing.T) {
		var pairs []struct {
			FromUser userJSON        `json:"from_user"`
			ToUser   userJSON        `json:"to_user"`
			Amount   decimal.Decimal `json:"amount"`
		}
		s.decode(s.do(http.MethodGet, "/balances", ""), http.StatusOK, &pairs)
		require.Len(t, pairs, 2)

		owed := map[string]decimal.Decimal{}
		for _, p := range pairs {
			assert.Equal(t, a.ID, p.ToUser.ID)
			owed[p.FromUser.Name] = p.Amount
		}
		assert.True(t, decimal.NewFromInt(140).Equal(owed["Bob"]))
		assert.True(t, decimal.NewFromInt(100).Equal(owed["Carol"]))

		s.decode(s.do(http.MethodGet, "/balances?user_id="+c.ID, ""), http.StatusOK, &pairs)
		require.Len(t, pairs, 1)
		assert.Equal(t, "Carol", pairs[0].FromUser.Name)
	})

	t.Run("user balances", func(t *testing.T) {
		var report struct {
			TotalPaid  decimal.Decimal `json:"total_paid"`
			NetBalance decimal.Decimal `json:"net_balance"`
			Balances   []struct {
				Direction string `json:"direction"`
			} `json:"balances"`
		}
		s.decode(s.do(http.MethodGet, "/balances/u/"+b.ID, ""), http.StatusOK, &report)
		assert.True(t, report.TotalPaid.IsZero())
		assert.True(t, decimal.NewFromInt(-140).Equal(report.NetBalance))
		require.Len(t, report.Balances, 1)
		assert.Equal(t, "you_owe", report.Balances[0].Direction)

		s.decode(s.do(http.MethodGet, "/balances/u/5b0c1f6e-7d7e-4a8e-9a43-2f1a3c7d9e10", ""), http.StatusNotFound, nil)
	})

	t.Run("balance sheet download", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/balance-sheet/download/u/"+a.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "balance_sheet_Alice_")
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	})

	t.Run("balance sheet email", func(t *testing.T) {
		s.decode(s.do(http.MethodPost, "/balance-sheet/email/u/"+b.ID, ""), http.StatusOK, nil)
		require.Equal(t, []string{"b@example.com"}, s.mailer.to)
		require.Len(t, s.mailer.attachments, 1)
		assert.True(t, bytes.HasPrefix(s.mailer.attachments[0].Content, []byte("%PDF-")))
	})
}

func TestEmptyStoreAndOperationalRoutes(t *testing.T) {
	s := newTestServer(t)

	var overall struct {
		Count          int             `json:"count"`
		Expenses       []any           `json:"expenses"`
		AverageExpense decimal.Decimal `json:"average_expense"`
	}
	s.decode(s.do(http.MethodGet, "/expenses", ""), http.StatusOK, &overall)
	assert.Equal(t, 0, overall.Count)
	assert.NotNil(t, overall.Expenses)
	assert.True(t, overall.AverageExpense.IsZero())

	var pairs []any
	s.decode(s.do(http.MethodGet, "/balances", ""), http.StatusOK, &pairs)
	assert.Empty(t, pairs)

	rec := s.do(http.MethodGet, "/health-check", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "expense_share_http_request_duration_seconds")
}
