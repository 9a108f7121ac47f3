package eventbus_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/postgres/storetest"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// BusIntegrationTestSuite runs the broker-backed transports against real servers.
type BusIntegrationTestSuite struct {
	suite.Suite
	ctx context.Context

	pgDSN       string
	pgTerminate func() error

	amqpURL  string
	rabbitmq testcontainers.Container
}

func TestBusIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test: requires docker")
	}
	suite.Run(t, new(BusIntegrationTestSuite))
}

func (suite *BusIntegrationTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	dsn, terminate, err := storetest.Postgres(suite.ctx)
	suite.Require().NoError(err)
	suite.pgDSN, suite.pgTerminate = dsn, terminate

	suite.rabbitmq, err = testcontainers.GenericContainer(suite.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			Env: map[string]string{
				"RABBITMQ_DEFAULT_USER": "dispatch",
				"RABBITMQ_DEFAULT_PASS": "dispatch",
			},
			WaitingFor: wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)

	host, err := suite.rabbitmq.Host(suite.ctx)
	suite.Require().NoError(err)
	port, err := suite.rabbitmq.MappedPort(suite.ctx, "5672/tcp")
	suite.Require().NoError(err)
	suite.amqpURL = fmt.Sprintf("amqp://dispatch:dispatch@%s:%s/", host, port.Port())
}

func (suite *BusIntegrationTestSuite) TearDownSuite() {
	if suite.pgTerminate != nil {
		suite.NoError(suite.pgTerminate())
	}
	if suite.rabbitmq != nil {
		suite.NoError(suite.rabbitmq.Terminate(context.Background()))
	}
}

func (suite *BusIntegrationTestSuite) exerciseBus(bus eventbus.Bus) {
	ctx, cancel := context.WithCancel(suite.ctx)
	defer cancel()

	suite.Require().NoError(bus.Ping(ctx))

	first, err := bus.Subscribe(ctx)
	suite.Require().NoError(err)
	second, err := bus.Subscribe(ctx)
	suite.Require().NoError(err)

	// Subscriptions are asynchronous on the server side; publish a probe until it lands.
	suite.Require().Eventually(func() bool {
		_ = bus.Publish(ctx, []byte(`{"event":"probe"}`))
		select {
		case <-first:
			return true
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 50*time.Millisecond)
	suite.drain(first)
	suite.drainUntil(second, `{"event":"probe"}`)

	for i := range 3 {
		suite.Require().NoError(bus.Publish(ctx, []byte(fmt.Sprintf(`{"seq":%d}`, i))))
	}
	for _, ch := range []<-chan []byte{first, second} {
		for i := range 3 {
			suite.Equal(fmt.Sprintf(`{"seq":%d}`, i), suite.next(ch))
		}
	}

	suite.Require().NoError(bus.Reconnect(ctx))
	suite.Require().NoError(bus.Close())
	suite.ErrorIs(bus.Publish(ctx, []byte("{}")), eventbus.ErrBusClosed)
}

func (suite *BusIntegrationTestSuite) next(ch <-chan []byte) string {
	select {
	case msg, ok := <-ch:
		suite.Require().True(ok, "subscription closed")
		return string(msg)
	case <-time.After(5 * time.Second):
		suite.FailNow("no message received")
		return ""
	}
}

func (suite *BusIntegrationTestSuite) drain(ch <-chan []byte) {
	for {
		select {
		case <-ch:
		case <-time.After(200 * time.Millisecond):
			return
		}
	}
}

func (suite *BusIntegrationTestSuite) drainUntil(ch <-chan []byte, want string) {
	for suite.next(ch) != want {
	}
	suite.drain(ch)
}

func (suite *BusIntegrationTestSuite) TestPostgresBus() {
	bus, err := eventbus.NewPostgresBus(suite.ctx, suite.pgDSN, "ops_events_test", discardLogger())
	suite.Require().NoError(err)
	suite.exerciseBus(bus)
}

func (suite *BusIntegrationTestSuite) TestPostgresBus_RejectsOversizedPayload() {
	bus, err := eventbus.NewPostgresBus(suite.ctx, suite.pgDSN, "ops_events_test", discardLogger())
	suite.Require().NoError(err)
	defer bus.Close()

	err = bus.Publish(suite.ctx, make([]byte, 8000))
	suite.ErrorIs(err, eventbus.ErrPayloadTooLarge)
}

func (suite *BusIntegrationTestSuite) TestAMQPBus() {
	bus, err := eventbus.NewAMQPBus(suite.ctx, suite.amqpURL, "dispatch_events_test", discardLogger())
	suite.Require().NoError(err)
	suite.exerciseBus(bus)
}
