package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/reqrelay/internal/relay"
	mock_relay "github.com/oshokin/reqrelay/internal/relay/mocks"
)

// newTestRelay creates a relay over mocked collaborators that tolerates any diagnostics.
func newTestRelay(ctrl *gomock.Controller) (*relay.RelayImpl, *mock_relay.MockTransport, *mock_relay.MockClock) {
	transport := mock_relay.NewMockTransport(ctrl)
	clock := mock_relay.NewMockClock(ctrl)
	sink := mock_relay.NewMockDiagnosticSink(ctrl)
	sink.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()

	return relay.NewRelay(relay.Options{
		Transport: transport,
		Clock:     clock,
		Sink:      sink,
	}), transport, clock
}

// TestRelay_Send tests the whole call for the reference scenarios.
//
//nolint:funlen // Scenario table.
func TestRelay_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		request       *relay.RequestDescriptor
		setup         func(*gomock.Controller, *mock_relay.MockTransport, *mock_relay.MockClock)
		expected      *relay.ResponseDescriptor
		expectedError error
	}{
		{
			name: "GET succeeds",
			request: &relay.RequestDescriptor{
				Method:  "GET",
				URL:     "https://example.com",
				Headers: []relay.Header{},
			},
			setup: func(ctrl *gomock.Controller, transport *mock_relay.MockTransport, clock *mock_relay.MockClock) {
				response := mock_relay.NewMockTransportResponse(ctrl)
				response.EXPECT().StatusCode().Return(200)
				response.EXPECT().StatusText().Return("OK")
				response.EXPECT().Text(gomock.Any()).Return("<html></html>", nil)

				gomock.InOrder(
					clock.EXPECT().Now().Return(10.0),
					transport.EXPECT().
						Dispatch(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, request *relay.TransportRequest) (relay.TransportResponse, error) {
							assert.Equal(t, "GET", request.Method)
							assert.Equal(t, "https://example.com", request.URL.String())

							return response, nil
						}),
					clock.EXPECT().Now().Return(25.0),
				)
			},
			expected: &relay.ResponseDescriptor{
				Status:     200,
				StatusText: "OK",
				Headers:    []relay.Header{},
				Body:       "<html></html>",
				ElapsedMs:  15,
			},
		},
		{
			name: "invalid JSON body is never dispatched",
			request: &relay.RequestDescriptor{
				Method:  "POST",
				URL:     "https://example.com",
				Headers: []relay.Header{{Name: "Content-Type", Value: "application/json"}},
				Body:    "{bad json",
			},
			expectedError: relay.ErrInvalidJSONBody,
		},
		{
			name: "TRACE is never dispatched",
			request: &relay.RequestDescriptor{
				Method: "TRACE",
				URL:    "https://example.com",
			},
			expectedError: relay.ErrUnsupportedMethod,
		},
		{
			name: "ftp URL is never dispatched",
			request: &relay.RequestDescriptor{
				Method: "GET",
				URL:    "ftp://example.com",
			},
			expectedError: relay.ErrUnsupportedScheme,
		},
		{
			name: "port out of range is never dispatched",
			request: &relay.RequestDescriptor{
				Method: "GET",
				URL:    "https://example.com:99999",
			},
			expectedError: relay.ErrMalformedURL,
		},
		{
			name: "network outage",
			request: &relay.RequestDescriptor{
				Method: "GET",
				URL:    "https://example.com",
			},
			setup: func(_ *gomock.Controller, transport *mock_relay.MockTransport, clock *mock_relay.MockClock) {
				clock.EXPECT().Now().Return(0.0).Times(2)
				transport.EXPECT().
					Dispatch(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("dial tcp: no route to host"))
			},
			expectedError: relay.ErrNetwork,
		},
		{
			name: "body with valid JSON is accepted but not sent",
			request: &relay.RequestDescriptor{
				Method:  "POST",
				URL:     "https://example.com/items",
				Headers: []relay.Header{{Name: "Content-Type", Value: "application/json"}},
				Body:    `{"name":"item"}`,
			},
			setup: func(ctrl *gomock.Controller, transport *mock_relay.MockTransport, clock *mock_relay.MockClock) {
				response := mock_relay.NewMockTransportResponse(ctrl)
				response.EXPECT().StatusCode().Return(201)
				response.EXPECT().StatusText().Return("")
				response.EXPECT().Text(gomock.Any()).Return("", nil)

				clock.EXPECT().Now().Return(5.0).Times(2)
				transport.EXPECT().
					Dispatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, request *relay.TransportRequest) (relay.TransportResponse, error) {
						assert.Equal(t, []relay.Header{{Name: "Content-Type", Value: "application/json"}}, request.Headers)

						return response, nil
					})
			},
			expected: &relay.ResponseDescriptor{
				Status:     201,
				StatusText: relay.NoStatusText,
				Headers:    []relay.Header{},
				Body:       "",
				ElapsedMs:  0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			r, transport, clock := newTestRelay(ctrl)
			if tt.setup != nil {
				tt.setup(ctrl, transport, clock)
			}

			response, err := r.Send(context.Background(), tt.request)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, response)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, response)
		})
	}
}

// TestRelay_Send_WithoutTransport tests that a relay with no host fails after validation.
func TestRelay_Send_WithoutTransport(t *testing.T) {
	t.Parallel()

	r := relay.NewRelay(relay.Options{Sink: relay.DiscardSink{}})

	_, err := r.Send(context.Background(), &relay.RequestDescriptor{Method: "GET", URL: "https://example.com"})
	require.ErrorIs(t, err, relay.ErrHostUnavailable)
	assert.Equal(t, relay.StateNetworkError, relay.TerminalState(err))

	_, err = r.Send(context.Background(), &relay.RequestDescriptor{Method: "TRACE", URL: "https://example.com"})
	require.ErrorIs(t, err, relay.ErrUnsupportedMethod)
}

// TestRelay_SendJSON tests the JSON boundary end to end.
func TestRelay_SendJSON(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, transport, clock := newTestRelay(ctrl)

	response := mock_relay.NewMockTransportResponse(ctrl)
	response.EXPECT().StatusCode().Return(200)
	response.EXPECT().StatusText().Return("OK")
	response.EXPECT().Text(gomock.Any()).Return("pong", nil)

	clock.EXPECT().Now().Return(1.0).Times(2)
	transport.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(response, nil)

	payload, err := r.SendJSON(context.Background(),
		[]byte(`{"method":"GET","url":"https://example.com/ping","headers":[["Accept","text/plain"]],"body":""}`))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.InDelta(t, 200, decoded["status"], 0)
	assert.Equal(t, "OK", decoded["statusText"])
	assert.Equal(t, []any{}, decoded["headers"])
	assert.Equal(t, "pong", decoded["body"])
	assert.InDelta(t, 0, decoded["elapsedMs"], 0)
}

// TestRelay_SendJSON_BadShape tests that shape mismatches never reach the transport.
func TestRelay_SendJSON_BadShape(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, _ := newTestRelay(ctrl)

	_, err := r.SendJSON(context.Background(), []byte(`{"method":"GET","url":"https://example.com"}`))
	require.ErrorIs(t, err, relay.ErrSerialization)
}

// TestRelay_Validate tests that validation never dispatches.
func TestRelay_Validate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, _ := newTestRelay(ctrl)

	require.NoError(t, r.Validate(context.Background(), &relay.RequestDescriptor{
		Method: "OPTIONS",
		URL:    "http://localhost:8080",
	}))

	err := r.Validate(context.Background(), &relay.RequestDescriptor{
		Method: "POST",
		URL:    "https://example.com",
		Body:   "payload",
	})
	require.ErrorIs(t, err, relay.ErrMissingContentType)
	assert.True(t, relay.IsValidationError(err))
}
