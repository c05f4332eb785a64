package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/luna/internal/analytics"
	httpserver "github.com/fyrsmithlabs/luna/internal/http"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/risk"
)

func ExampleServer() {
	svc, err := analytics.New(context.Background(), analytics.Config{}, logbook.NewMemoryStore(), zap.NewNop())
	if err != nil {
		panic(err)
	}
	defer svc.Close()

	server, err := httpserver.NewServer(svc, zap.NewNop(), nil)
	if err != nil {
		panic(err)
	}

	body, _ := json.Marshal(httpserver.RiskRequest{
		Symptoms: []string{risk.IrregularPeriods, risk.HairGrowth, risk.AcneOilySkin},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/risk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var a risk.Assessment
	_ = json.Unmarshal(rec.Body.Bytes(), &a)
	fmt.Println(rec.Code, a.Verdict, a.PCOSScore)
	// Output: 200 PotentialPCOS 3
}
