package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "sess-test-1"

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /user/auth", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["login"] != "alice" || creds["password"] != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"auth failed"}`))
			return
		}
		_, _ = w.Write([]byte(`{"session_id":"` + testSession + `"}`))
	})

	authed := func(w http.ResponseWriter, r *http.Request) bool {
		cookie, err := r.Cookie("session_id")
		if err != nil || cookie.Value != testSession {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return false
		}
		return true
	}

	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"user_id":7,"login":"alice","full_name":"Alice K","balance":150.5,"discount":5}`))
	})

	mux.HandleFunc("GET /service/order", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_, _ = w.Write([]byte(`[
			{"service_id":1,"name":"VPS Start","cost":100,"period_cost":100},
			{"service_id":2,"name":"VPS Pro","cost":900,"period_cost":900}
		]`))
	})

	mux.HandleFunc("GET /service/order/1", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"service_id":1,"name":"VPS Start","cost":100}`))
	})

	mux.HandleFunc("GET /service/order/2", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"service_id":2,"name":"VPS Pro","cost":900}`))
	})

	mux.HandleFunc("PUT /service/order", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if id, ok := body["service_id"].(float64); ok {
			backendOrdered = append(backendOrdered, int64(id))
		}
		_, _ = w.Write([]byte(`{"user_service_id":55,"service_id":1,"name":"VPS Start","status":"NOT PAID"}`))
	})

	mux.HandleFunc("GET /user/service", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_, _ = w.Write([]byte(`[
			{"user_service_id":10,"service_id":1,"name":"VPS Start","status":"ACTIVE","cost":100},
			{"user_service_id":11,"service_id":2,"name":"VPN","status":-1,"cost":50}
		]`))
	})

	mux.HandleFunc("DELETE /user/service/10", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /user/pay/forecast", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		if backendForecast != "" {
			_, _ = w.Write([]byte(backendForecast))
			return
		}
		_, _ = w.Write([]byte(`{
			"balance":150.5,"bonuses":0,"total":300,
			"items":[{"name":"VPS Start","total":300,"status":"NOT PAID"}]
		}`))
	})

	mux.HandleFunc("GET /user/pay/paysystems", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_, _ = w.Write([]byte(`[{"paysystem":"yookassa","name":"YooKassa","shm_url":"` + backendPayURL + `"}]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// Per-test fixture knobs for the shared backend mux.
var (
	backendPayURL   string
	backendForecast string
	backendOrdered  []int64
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func setupEnv(t *testing.T) *httptest.Server {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("TELEGRAM_WEBAPP_INIT_DATA", "")
	// Resolve payment links in-app so assertions see the final URL.
	t.Setenv("BKCLOUD_PAYMENT_LINK_OUT", "false")

	backendForecast = ""
	backendOrdered = nil
	t.Cleanup(func() {
		backendForecast = ""
		backendOrdered = nil
	})

	server := newBackend(t)
	t.Setenv("BKCLOUD_API_BASE_URL", server.URL)
	return server
}

func loginCLI(t *testing.T) {
	t.Helper()

	stdout, _, err := executeCLI(t, "login", "--login", "alice", "--password", "secret1")
	require.NoError(t, err)
	require.Contains(t, stdout, "Logged in as alice")
}

func TestVersionCommand(t *testing.T) {
	setupEnv(t)

	stdout, _, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev", strings.TrimSpace(stdout))
}

func TestProfileRequiresLogin(t *testing.T) {
	setupEnv(t)

	_, _, err := executeCLI(t, "profile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestLoginThenProfile(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	stdout, _, err := executeCLI(t, "profile")
	require.NoError(t, err)
	assert.Contains(t, stdout, "alice")
	assert.Contains(t, stdout, "150.50")
	assert.Contains(t, stdout, "Alice K")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupEnv(t)

	_, _, err := executeCLI(t, "login", "--login", "alice", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth failed")
}

func TestLogoutForgetsSession(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	_, _, err := executeCLI(t, "logout")
	require.NoError(t, err)

	_, _, err = executeCLI(t, "profile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestTariffsList(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	stdout, _, err := executeCLI(t, "tariffs")
	require.NoError(t, err)
	assert.Contains(t, stdout, "VPS Start")
	assert.Contains(t, stdout, "VPS Pro")
}

func TestServicesListShowsBothStatusDialects(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	stdout, _, err := executeCLI(t, "services", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "VPS Start\tactive")
	assert.Contains(t, stdout, "VPN\tblocked")
}

func TestServicesDelete(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	stdout, _, err := executeCLI(t, "services", "delete", "10")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Service 10 deleted")
}

func TestForecastShowsDebt(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	stdout, _, err := executeCLI(t, "forecast")
	require.NoError(t, err)
	assert.Contains(t, stdout, "VPS Start\t300.00\tnot paid")
	assert.Contains(t, stdout, "debt:\t150")
}

func TestOrderDivertsToTopUpOnDebt(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	// The fixture forecast carries an unpaid item, so ordering always
	// diverts to settling the debt first.
	stdout, _, err := executeCLI(t, "services", "order", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Outstanding debt: pay 150 first")
	assert.Contains(t, stdout, "bkcloud topup --amount 150")
	assert.NotContains(t, stdout, "--service")
}

func TestOrderDivertsToTopUpOnShortfall(t *testing.T) {
	setupEnv(t)
	backendForecast = `{"balance":150.5,"bonuses":0,"total":0,"items":[]}`
	loginCLI(t)

	stdout, _, err := executeCLI(t, "services", "order", "2", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Insufficient funds: top up 750 first")
	assert.Contains(t, stdout, "bkcloud topup --amount 750 --service 2")
	assert.Empty(t, backendOrdered, "a shortfall must not place the order")
}

func TestTopUpPrintsPaymentLink(t *testing.T) {
	setupEnv(t)

	gate := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "500", r.URL.Query().Get("amount"))
		w.Header().Set("Location", "https://gate.example.com/pay/abc")
		w.WriteHeader(http.StatusFound)
	}))
	defer gate.Close()
	backendPayURL = gate.URL + "/?amount="
	t.Cleanup(func() { backendPayURL = "" })

	loginCLI(t)

	stdout, _, err := executeCLI(t, "topup", "--amount", "500")
	require.NoError(t, err)
	assert.Contains(t, stdout, "https://gate.example.com/pay/abc")
}

func TestTopUpSanitizesAmount(t *testing.T) {
	setupEnv(t)

	gate := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000", r.URL.Query().Get("amount"))
		w.Header().Set("Location", "https://gate.example.com/pay/xyz")
		w.WriteHeader(http.StatusFound)
	}))
	defer gate.Close()
	backendPayURL = gate.URL + "/?amount="
	t.Cleanup(func() { backendPayURL = "" })

	loginCLI(t)

	_, _, err := executeCLI(t, "topup", "--amount", "1 000 ₽")
	require.NoError(t, err)
}

func TestTopUpOrdersPendingService(t *testing.T) {
	setupEnv(t)

	gate := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://gate.example.com/pay/pending")
		w.WriteHeader(http.StatusFound)
	}))
	defer gate.Close()
	backendPayURL = gate.URL + "/?amount="
	t.Cleanup(func() { backendPayURL = "" })

	loginCLI(t)

	stdout, _, err := executeCLI(t, "topup", "--amount", "750", "--service", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "https://gate.example.com/pay/pending")
	assert.Equal(t, []int64{2}, backendOrdered)
}

func TestPaySystemsList(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	stdout, _, err := executeCLI(t, "topup", "paysystems")
	require.NoError(t, err)
	assert.Contains(t, stdout, "yookassa\tYooKassa")
}

func TestJSONOutput(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	stdout, _, err := executeCLI(t, "tariffs", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"Name": "VPS Pro"`)
	assert.Contains(t, stdout, `"Cost": 900`)

	stdout, _, err = executeCLI(t, "services", "list", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"Name": "VPS Start"`)

	stdout, _, err = executeCLI(t, "topup", "paysystems", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"ID": "yookassa"`)
}

func TestUnknownPaySystem(t *testing.T) {
	setupEnv(t)
	loginCLI(t)

	_, _, err := executeCLI(t, "topup", "--amount", "100", "--paysystem", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown pay system "nope"`)
}
