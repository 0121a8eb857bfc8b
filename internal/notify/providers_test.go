package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFast2SMS_Send(t *testing.T) {
	var gotAuth, gotNumbers, gotMessage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAuth = r.Header.Get("Authorization")
		gotNumbers = r.PostFormValue("numbers")
		gotMessage = r.PostFormValue("message")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"return":true,"request_id":"abc","message":["SMS sent successfully."]}`))
	}))
	defer srv.Close()

	p := NewFast2SMS("key-123")
	p.endpoint = srv.URL

	err := p.Send(context.Background(), "9876543210", "your coupon is ZTX-WEB10")
	require.NoError(t, err)
	assert.Equal(t, "key-123", gotAuth)
	assert.Equal(t, "9876543210", gotNumbers)
	assert.Equal(t, "your coupon is ZTX-WEB10", gotMessage)
}

func TestFast2SMS_Send_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"return":false,"message":"Invalid Authentication"}`))
	}))
	defer srv.Close()

	p := NewFast2SMS("bad-key")
	p.endpoint = srv.URL

	err := p.Send(context.Background(), "9876543210", "hi")
	assert.Error(t, err)
}

func TestFast2SMS_Configured(t *testing.T) {
	assert.False(t, NewFast2SMS("").Configured())
	assert.True(t, NewFast2SMS("key").Configured())
}

func TestMSG91_Send(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"authkey": q.Get("authkey"),
			"mobiles": q.Get("mobiles"),
			"sender":  q.Get("sender"),
			"route":   q.Get("route"),
			"country": q.Get("country"),
		}
		_, _ = w.Write([]byte("3763646c3058373530393938"))
	}))
	defer srv.Close()

	p := NewMSG91("auth-123", "ZTECHX")
	p.endpoint = srv.URL

	err := p.Send(context.Background(), "9876543210", "your coupon is ZTX-WEB10")
	require.NoError(t, err)
	assert.Equal(t, "auth-123", gotQuery["authkey"])
	assert.Equal(t, "919876543210", gotQuery["mobiles"], "country code prepended to 10-digit numbers")
	assert.Equal(t, "ZTECHX", gotQuery["sender"])
	assert.Equal(t, "4", gotQuery["route"])
	assert.Equal(t, "91", gotQuery["country"])
}

func TestMSG91_Send_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewMSG91("bad-key", "ZTECHX")
	p.endpoint = srv.URL

	err := p.Send(context.Background(), "9876543210", "hi")
	assert.Error(t, err)
}

func TestMSG91_Configured(t *testing.T) {
	assert.False(t, NewMSG91("", "ZTECHX").Configured())
	assert.True(t, NewMSG91("auth", "ZTECHX").Configured())
}

func TestTwilio_Configured(t *testing.T) {
	assert.False(t, NewTwilio("", "", "", nil).Configured())
	assert.False(t, NewTwilio("AC123", "tok", "", nil).Configured(), "sender number required")
	assert.True(t, NewTwilio("AC123", "tok", "+15005550006", nil).Configured())
}
