package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/db"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/storage"
)

type secretPayload struct {
	DatabaseURL string `json:"DATABASE_URL"`
}

type secretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type metricPutter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// lowStockItem is the trimmed product row written to the report
type lowStockItem struct {
	ProductID     int     `json:"product_id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	MinStockLevel int     `json:"min_stock_level"`
	Reorder       int     `json:"reorder_quantity"`
	Price         float64 `json:"price"`
}

type report struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Metrics     models.DashboardMetrics `json:"metrics"`
	LowStock    []lowStockItem          `json:"low_stock"`
	Location    string                  `json:"location,omitempty"`
}

func getSecret(ctx context.Context, sm secretGetter, secretArn string) (string, error) {
	out, err := sm.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: &secretArn})
	if err != nil {
		return "", fmt.Errorf("get secret: %w", err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret has no string value")
	}
	var payload secretPayload
	if err := json.Unmarshal([]byte(*out.SecretString), &payload); err != nil {
		return "", fmt.Errorf("parse secret json: %w", err)
	}
	if payload.DatabaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL missing in secret")
	}
	return payload.DatabaseURL, nil
}

// buildReport restocks every low item up to its maximum level
func buildReport(now time.Time, metrics models.DashboardMetrics, products []models.Product) report {
	r := report{GeneratedAt: now.UTC(), Metrics: metrics, LowStock: make([]lowStockItem, 0, len(products))}
	for _, p := range products {
		reorder := p.MaxStockLevel - p.Quantity
		if reorder < 0 {
			reorder = 0
		}
		r.LowStock = append(r.LowStock, lowStockItem{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			Quantity:      p.Quantity,
			MinStockLevel: p.MinStockLevel,
			Reorder:       reorder,
			Price:         p.Price,
		})
	}
	return r
}

func metricData(now time.Time, m models.DashboardMetrics) []cwtypes.MetricDatum {
	return []cwtypes.MetricDatum{
		{MetricName: awsStr("TotalStock"), Timestamp: &now, Unit: cwtypes.StandardUnitCount, Value: awsFloat(float64(m.TotalStock))},
		{MetricName: awsStr("LowStockCount"), Timestamp: &now, Unit: cwtypes.StandardUnitCount, Value: awsFloat(float64(m.LowStockCount))},
		{MetricName: awsStr("InventoryValue"), Timestamp: &now, Unit: cwtypes.StandardUnitNone, Value: awsFloat(m.InventoryValue)},
		{MetricName: awsStr("TotalOrders"), Timestamp: &now, Unit: cwtypes.StandardUnitCount, Value: awsFloat(float64(m.TotalOrders))},
	}
}

func putMetrics(ctx context.Context, cw metricPutter, ns string, now time.Time, m models.DashboardMetrics) error {
	_, err := cw.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &ns,
		MetricData: metricData(now, m),
	})
	return err
}

// resolveDSN reads DATABASE_URL from Secrets Manager, or the environment when no secret is configured
func resolveDSN(ctx context.Context, sm secretGetter) (string, error) {
	if secretArn := os.Getenv("SECRET_ARN"); secretArn != "" {
		return getSecret(ctx, sm, secretArn)
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}
	return "", fmt.Errorf("SECRET_ARN or DATABASE_URL env var is required")
}

func handler(ctx context.Context) (report, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-central-1"
	}
	ns := os.Getenv("METRIC_NAMESPACE")
	if ns == "" {
		ns = "RetailSupplyChain/Inventory"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return report{}, fmt.Errorf("aws config: %w", err)
	}
	sm := secretsmanager.NewFromConfig(awsCfg)
	cw := cloudwatch.NewFromConfig(awsCfg)

	dsn, err := resolveDSN(ctx, sm)
	if err != nil {
		return report{}, err
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return report{}, fmt.Errorf("parse db url: %w", err)
	}
	// keep pool tiny
	cfg.MaxConns = 1
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return report{}, fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()
	database := db.NewFromPool(pool)

	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	metrics, err := database.DashboardMetrics(queryCtx)
	if err != nil {
		return report{}, fmt.Errorf("dashboard metrics: %w", err)
	}
	lowStock, err := database.ListLowStockProducts(queryCtx)
	if err != nil {
		return report{}, fmt.Errorf("low stock products: %w", err)
	}

	now := time.Now()
	rep := buildReport(now, *metrics, lowStock)

	uploader, err := storage.NewS3Uploader(ctx, os.Getenv("REPORT_S3_BUCKET"), region)
	if err != nil {
		return report{}, err
	}
	if uploader.Enabled() {
		loc, err := uploader.UploadJSON(ctx, storage.TimestampKey(storage.InventoryReportPrefix, now), rep)
		if err != nil {
			return report{}, fmt.Errorf("upload report: %w", err)
		}
		rep.Location = loc
	}

	log.Printf("[INVENTORY] total_stock=%d low_stock=%d inventory_value=%.2f total_orders=%d report=%s",
		metrics.TotalStock, metrics.LowStockCount, metrics.InventoryValue, metrics.TotalOrders, rep.Location)

	if err := putMetrics(ctx, cw, ns, now, *metrics); err != nil {
		log.Printf("PutMetricData failed: %v", err)
	}
	return rep, nil
}

func awsStr(s string) *string      { return &s }
func awsFloat(f float64) *float64 { return &f }

func main() { lambda.Start(handler) }
