package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/Conceptual-Machines/songprompt/internal/logger"
)

const (
	namespace                = "SongPrompt/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client. It is only enabled in
// production, or anywhere when force is set.
func NewClient(ctx context.Context, environment string, force bool) (*Client, error) {
	if environment != "production" && !force {
		logger.Info("CloudWatch metrics disabled", logger.Fields{"environment": environment})
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Warn("Failed to load AWS config for CloudWatch", logger.Fields{"error": err.Error()})
		return &Client{enabled: false, environment: environment}, nil
	}

	logger.Info("CloudWatch metrics enabled", logger.Fields{"namespace": namespace})
	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are published.
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	go func() {
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}
		dimensions := m.dimensions("Endpoint", endpoint)

		m.put(metricName, 1, types.StandardUnitCount, dimensions)
		m.put("APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
	}()
}

// RecordSelection records how many tags one instrument selection produced
func (m *Client) RecordSelection(genre string, tagCount int) {
	if !m.Enabled() {
		return
	}

	go func() {
		m.put("InstrumentTags", float64(tagCount), types.StandardUnitCount, m.dimensions("Genre", genre))
	}()
}

// RecordBlend records a guidance blend and whether any genre resolved
func (m *Client) RecordBlend(genreCount int, resolved bool) {
	if !m.Enabled() {
		return
	}

	go func() {
		dimensions := m.dimensions("Resolved", strconv.FormatBool(resolved))
		m.put("BlendedGenres", float64(genreCount), types.StandardUnitCount, dimensions)
	}()
}

func (m *Client) dimensions(name, value string) []types.Dimension {
	return []types.Dimension{
		{
			Name:  aws.String(name),
			Value: aws.String(value),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}
}

func (m *Client) put(metricName string, value float64, unit types.StandardUnit, dimensions []types.Dimension) {
	if err := m.putMetric(metricName, value, unit, dimensions); err != nil {
		logger.Warn("Failed to record CloudWatch metric", logger.Fields{
			"metric": metricName,
			"error":  err.Error(),
		})
	}
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}
