package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"
)

func withParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response does not contain data object: %s", w.Body.String())
	}
	return data
}

func TestHandlerCreateOrder(t *testing.T) {
	f := newEngineFixture()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "dineIn",
			body:           fmt.Sprintf(`{"table_id":%q,"items":[{"menu_item_id":%q,"quantity":1},{"menu_item_id":%q,"quantity":2}]}`, f.table.ID, f.burger.ID, f.fries.ID),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "tableAlreadyOpen",
			body:           fmt.Sprintf(`{"table_id":%q,"items":[{"menu_item_id":%q,"quantity":1}]}`, f.table.ID, f.fries.ID),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "takeout",
			body:           fmt.Sprintf(`{"type":"takeout","customer_name":"Ana","items":[{"menu_item_id":%q,"quantity":1}]}`, f.fries.ID),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "noItems",
			body:           `{"items":[]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "dineInWithoutTable",
			body:           fmt.Sprintf(`{"type":"dine_in","items":[{"menu_item_id":%q,"quantity":1}]}`, f.fries.ID),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknownMenuItem",
			body:           `{"items":[{"menu_item_id":"00000000-0000-0000-0000-000000000001","quantity":1}]}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalidJSON",
			body:           `{"items":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(f.engine, aqm.NewConfig(), nil)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.CreateOrder(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("CreateOrder() status = %d, want %d: %s", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedStatus == http.StatusCreated {
				data := decodeData(t, w)
				if data["status"] != "open" {
					t.Errorf("status = %v, want open", data["status"])
				}
			}
		})
	}
}

func TestHandlerGetOrder(t *testing.T) {
	f := newEngineFixture()
	o := f.openTab(t)
	h := NewHandler(f.engine, aqm.NewConfig(), nil)

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{name: "found", id: o.ID.String(), expectedStatus: http.StatusOK},
		{name: "notFound", id: "00000000-0000-0000-0000-000000000001", expectedStatus: http.StatusNotFound},
		{name: "invalidID", id: "nope", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withParams(httptest.NewRequest(http.MethodGet, "/orders/"+tt.id, nil), map[string]string{"id": tt.id})
			w := httptest.NewRecorder()
			h.GetOrder(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("GetOrder() status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerListOrders(t *testing.T) {
	f := newEngineFixture()
	f.openTab(t)
	h := NewHandler(f.engine, aqm.NewConfig(), nil)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
	}{
		{name: "all", query: "", expectedStatus: http.StatusOK},
		{name: "open", query: "?status=open", expectedStatus: http.StatusOK},
		{name: "invalidStatus", query: "?status=cooking", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/orders"+tt.query, nil)
			w := httptest.NewRecorder()
			h.ListOrders(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("ListOrders() status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerFindOpenOrder(t *testing.T) {
	f := newEngineFixture()
	h := NewHandler(f.engine, aqm.NewConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/open?table_id="+f.table.ID.String(), nil)
	w := httptest.NewRecorder()
	h.FindOpenOrder(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("FindOpenOrder() without order status = %d, want %d", w.Code, http.StatusNotFound)
	}

	o := f.openTab(t)

	w = httptest.NewRecorder()
	h.FindOpenOrder(w, httptest.NewRequest(http.MethodGet, "/orders/open?table_id="+f.table.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("FindOpenOrder() status = %d, want %d", w.Code, http.StatusOK)
	}
	if data := decodeData(t, w); data["id"] != o.ID.String() {
		t.Errorf("id = %v, want %s", data["id"], o.ID)
	}

	w = httptest.NewRecorder()
	h.FindOpenOrder(w, httptest.NewRequest(http.MethodGet, "/orders/open?table_id=bad", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("FindOpenOrder() invalid table status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandlerUpdateOrder(t *testing.T) {
	f := newEngineFixture()
	o := f.openTab(t)
	h := NewHandler(f.engine, aqm.NewConfig(), nil)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name: "recomputesTotals",
			body: fmt.Sprintf(`{"table_id":%q,"type":"dine_in","status":"open","total":"1.00","items":[{"id":%q,"menu_item_id":%q,"name":"Wagyu Burger","price":"18.50","quantity":1}]}`,
				f.table.ID, o.Items[0].ID, f.burger.ID),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalidStatus",
			body:           `{"type":"dine_in","status":"cooking","items":[]}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withParams(httptest.NewRequest(http.MethodPut, "/orders/"+o.ID.String(), bytes.NewBufferString(tt.body)), map[string]string{"id": o.ID.String()})
			w := httptest.NewRecorder()
			h.UpdateOrder(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("UpdateOrder() status = %d, want %d: %s", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				data := decodeData(t, w)
				if data["total"] != "20.35" {
					t.Errorf("total = %v, want 20.35", data["total"])
				}
			}
		})
	}
}

func TestHandlerItemOperations(t *testing.T) {
	f := newEngineFixture()
	o := f.openTab(t)
	h := NewHandler(f.engine, aqm.NewConfig(), nil)
	params := map[string]string{"id": o.ID.String(), "itemID": o.Items[1].ID.String()}

	w := httptest.NewRecorder()
	body := fmt.Sprintf(`{"menu_item_id":%q}`, f.burger.ID)
	h.AddMenuItem(w, withParams(httptest.NewRequest(http.MethodPost, "/orders/x/items", bytes.NewBufferString(body)), params))
	if w.Code != http.StatusOK {
		t.Fatalf("AddMenuItem() status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	h.AdjustItemQuantity(w, withParams(httptest.NewRequest(http.MethodPatch, "/orders/x/items/y/quantity", bytes.NewBufferString(`{"delta":0}`)), params))
	if w.Code != http.StatusBadRequest {
		t.Errorf("AdjustItemQuantity() zero delta status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = httptest.NewRecorder()
	h.AdjustItemQuantity(w, withParams(httptest.NewRequest(http.MethodPatch, "/orders/x/items/y/quantity", bytes.NewBufferString(`{"delta":-2}`)), params))
	if w.Code != http.StatusOK {
		t.Fatalf("AdjustItemQuantity() status = %d, want %d", w.Code, http.StatusOK)
	}
	if items := decodeData(t, w)["items"].([]interface{}); len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}

	w = httptest.NewRecorder()
	readyParams := map[string]string{"id": o.ID.String(), "itemID": o.Items[0].ID.String()}
	h.MarkItemReady(w, withParams(httptest.NewRequest(http.MethodPatch, "/orders/x/items/y/ready", nil), readyParams))
	if w.Code != http.StatusOK {
		t.Errorf("MarkItemReady() status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestHandlerPay(t *testing.T) {
	f := newEngineFixture()
	o := f.openTab(t)
	h := NewHandler(f.engine, aqm.NewConfig(), nil)

	tests := []struct {
		name           string
		expectedStatus int
	}{
		{name: "firstPayment", expectedStatus: http.StatusOK},
		{name: "alreadyPaid", expectedStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withParams(httptest.NewRequest(http.MethodPost, "/orders/"+o.ID.String()+"/pay", nil), map[string]string{"id": o.ID.String()})
			w := httptest.NewRecorder()
			h.Pay(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Pay() status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}
