package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(calculation.NewEngine(), nil, Options{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

type envelope struct {
	Success   bool            `json:"success"`
	ReceiptID string          `json:"receipt_id"`
	Data      json.RawMessage `json:"data"`
	Error     *ErrorDetail    `json:"error"`
}

func post(t *testing.T, ts *httptest.Server, path, body string) (int, envelope) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestCalculate_Wage(t *testing.T) {
	ts := newTestServer(t)

	status, env := post(t, ts, "/api/v1/pph21", `{"monthly_salary": 10000000, "status": "TK/0", "has_npwp": true}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	_, err := uuid.Parse(env.ReceiptID)
	assert.NoError(t, err, "receipt id is a uuid")

	var data struct {
		Calculator string `json:"calculator"`
		Summary    string `json:"summary"`
		Result     struct {
			Kind string `json:"kind"`
			Tax  string `json:"tax"`
			Net  string `json:"net"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "pph21", data.Calculator)
	assert.Equal(t, "pph21_annual", data.Result.Kind)
	assert.Equal(t, "2820000", data.Result.Tax)
	assert.Equal(t, "112380000", data.Result.Net)
	assert.Contains(t, data.Summary, "Rp2.820.000")
}

func TestCalculate_Regimes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path string
		body string
		tax  string
	}{
		{"/api/v1/pesangon", `{"amount": "600000000"}`, "87500000"},
		{"/api/v1/umkm", `{"turnover": 600000000}`, "500000"},
		{"/api/v1/ppn", `{"price": 1000000, "other_value": true}`, "110000"},
		{"/api/v1/norma", `{"gross": 500000000, "profession": "doctor", "region": "major_city"}`, "23400000"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, env := post(t, ts, tt.path, tt.body)
			require.Equal(t, http.StatusOK, status)

			var data struct {
				Result struct {
					Tax string `json:"tax"`
				} `json:"result"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, tt.tax, data.Result.Tax)
		})
	}
}

func TestCalculate_Penalty(t *testing.T) {
	ts := newTestServer(t)

	status, env := post(t, ts, "/api/v1/denda", `{"principal": 1000000, "due_date": "2024-01-01", "payment_date": "2024-03-15"}`)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Result struct {
			MonthsLate   int    `json:"monthsLate"`
			InterestFine string `json:"interestFine"`
			TotalPayable string `json:"totalPayable"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 3, data.Result.MonthsLate)
	assert.Equal(t, "27075", data.Result.InterestFine)
	assert.Equal(t, "1027075", data.Result.TotalPayable)
}

func TestCalculate_Errors(t *testing.T) {
	ts := newTestServer(t)

	status, env := post(t, ts, "/api/v1/pph21", `{"monthly_salary": `)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	status, _ = post(t, ts, "/api/v1/pph21", `{"salary": 1}`)
	assert.Equal(t, http.StatusBadRequest, status, "unknown fields are rejected")

	status, env = post(t, ts, "/api/v1/pph21", `{"monthly_salary": -1, "months_worked": 13}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "WageRequest.months_worked")
	assert.Contains(t, env.Error.Details, "WageRequest.monthly_salary")

	status, env = post(t, ts, "/api/v1/denda", `{"principal": 1, "due_date": "31-01-2024", "payment_date": "2024-03-15"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Error.Details, "PenaltyRequest.due_date")

	status, env = post(t, ts, "/api/v1/denda", `{"principal": 1, "due_date": "2024-01-01", "payment_date": "2024-03-15", "reference_rate": -0.05, "uplift_factor": 1.5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "PenaltyRequest.reference_rate")
	assert.Contains(t, env.Error.Details, "PenaltyRequest.uplift_factor")

	status, env = post(t, ts, "/api/v1/warisan", `{}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestCalculate_UnknownCategoryDefaults(t *testing.T) {
	ts := newTestServer(t)

	status, env := post(t, ts, "/api/v1/pph23", `{"amount": 1000000, "category": "consulting", "has_npwp": true}`)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Result struct {
			Tax       string   `json:"tax"`
			Defaulted []string `json:"defaulted"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "0", data.Result.Tax)
	assert.NotEmpty(t, data.Result.Defaulted)
}

func TestCompareAndProject(t *testing.T) {
	ts := newTestServer(t)

	status, env := post(t, ts, "/api/v1/compare", `{"profiles": [
		{"kind": "employee", "name": "Karyawan", "monthly_salary": 10000000, "has_npwp": true},
		{"kind": "small_business", "name": "Warung", "turnover": 120000000}
	]}`)
	require.Equal(t, http.StatusOK, status)
	var set struct {
		LowestTax string `json:"lowestTax"`
		Results   []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &set))
	assert.Equal(t, "Warung", set.LowestTax)
	assert.Len(t, set.Results, 2)

	status, _ = post(t, ts, "/api/v1/compare", `{"profiles": [{"kind": "retiree", "name": "x"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, env = post(t, ts, "/api/v1/project", `{"profile": {"kind": "small_business", "name": "Warung", "turnover": 600000000},
		"growth_rate": 0.1, "inflation_rate": 0.05, "horizon_years": 3}`)
	require.Equal(t, http.StatusOK, status)
	var proj struct {
		Years []struct {
			Offset int `json:"offset"`
		} `json:"years"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &proj))
	assert.Len(t, proj.Years, 3)
}

func TestCompareWhatIf(t *testing.T) {
	ts := newTestServer(t)

	status, env := post(t, ts, "/api/v1/compare", `{"profiles": [
		{"kind": "small_business", "name": "Warung", "turnover": 120000000},
		{"kind": "employee", "name": "Karyawan", "monthly_salary": 10000000, "has_npwp": true}
	], "base": "Karyawan", "with": ["switch_umkm", "married_2"]}`)
	require.Equal(t, http.StatusOK, status)
	var set struct {
		Results []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &set))
	require.Len(t, set.Results, 3)
	assert.Equal(t, "Karyawan", set.Results[0].Name)
	assert.Equal(t, "Karyawan + switch_umkm", set.Results[1].Name)
	assert.Equal(t, "small_business", set.Results[1].Kind)

	status, _ = post(t, ts, "/api/v1/compare", `{"profiles": [{"kind": "employee", "name": "A"}], "with": ["retire_early"]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = post(t, ts, "/api/v1/compare", `{"profiles": [{"kind": "employee", "name": "A"}], "base": "B", "with": ["no_npwp"]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGrossUp(t *testing.T) {
	ts := newTestServer(t)

	status, env := post(t, ts, "/api/v1/grossup", `{"profiles": [
		{"kind": "employee", "name": "Karyawan", "has_npwp": true},
		{"kind": "small_business", "name": "Warung"}
	], "metric": "net", "target": 400000000}`)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, env.ReceiptID)
	var mr struct {
		Cheapest struct {
			InputField    string `json:"inputField"`
			RequiredGross string `json:"requiredGross"`
		} `json:"cheapest"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mr))
	assert.Len(t, mr.Results, 2)
	assert.Equal(t, "turnover", mr.Cheapest.InputField)
	assert.Equal(t, "400000000", mr.Cheapest.RequiredGross)

	status, _ = post(t, ts, "/api/v1/grossup", `{"profiles": [{"kind": "employee", "name": "A"}], "metric": "gross", "target": 1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = post(t, ts, "/api/v1/grossup", `{"profiles": [{"kind": "employee", "name": "A"}], "target": -1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRatesHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/rates")
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	assert.Contains(t, string(env.Data), `"version":"2025.1"`)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	post(t, ts, "/api/v1/umkm", `{"turnover": 600000000}`)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `hitungpajak_computations_total{calculator="umkm",kind="pph_final_umkm"} 1`)
	assert.Contains(t, string(body), `hitungpajak_http_requests_total{method="POST",route="/api/v1/{calculator}",status="200"} 1`)
}
