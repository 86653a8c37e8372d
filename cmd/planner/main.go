// planner ejecuta el motor de producción BOM desde la línea de comandos.
//
// Con DATABASE_URL definido calcula contra PostgreSQL:
//
//	planner -company <uuid> -products <id1,id2,...> [-plan id=qty,id=qty]
//
// Sin DATABASE_URL corre en modo demo: siembra datos en memoria (el ejemplo
// clásico de la hamburguesa) y ejecuta disponibilidad, plan y cronograma.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/application/production"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/internal/infrastructure/memory"
	"github.com/jhoicas/bom-engine/internal/infrastructure/postgres"
	"github.com/jhoicas/bom-engine/pkg/config"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

func main() {
	companyFlag := flag.String("company", "", "ID de la empresa (tenant)")
	productsFlag := flag.String("products", "", "IDs de producto separados por coma")
	planFlag := flag.String("plan", "", "plan de producción id=cantidad separado por comas")
	partialFlag := flag.Bool("allow-partial", false, "permitir plan parcial si el total no alcanza")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().Str("app", cfg.App.Name).Str("env", cfg.App.Env).Msg("iniciando planner")

	ctx := context.Background()

	var (
		materialRepo repository.MaterialRepository
		productRepo  repository.ProductRepository
		recipeRepo   repository.RecipeRepository
		companyID    = *companyFlag
		productIDs   []string
		demoOrders   []entity.ProductionOrder
	)

	if cfg.DB.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		materialRepo = postgres.NewMaterialRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		recipeRepo = postgres.NewRecipeRepository(pool)
		if companyID == "" || *productsFlag == "" {
			log.Fatal().Msg("con PostgreSQL se requieren -company y -products")
		}
		productIDs = strings.Split(*productsFlag, ",")
	} else {
		log.Info().Msg("sin DATABASE_URL: modo demo con repositorios en memoria")
		mem := seedDemo()
		materialRepo, productRepo, recipeRepo = mem.materials, mem.products, mem.recipes
		companyID = mem.companyID
		productIDs = mem.productIDs
		demoOrders = mem.orders
	}

	availability := production.NewAvailabilityUseCase(productRepo, recipeRepo, log, cfg.Planner.BulkWorkers)
	batch := production.NewBatchUseCase(productRepo, recipeRepo, log)
	multi := production.NewMultiProductUseCase(batch, log)
	planner := production.NewPlannerUseCase(multi, productRepo, recipeRepo, log)
	restock := production.NewRestockUseCase(materialRepo, log)

	results, err := availability.BulkCalculateAvailability(ctx, companyID, productIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("disponibilidad")
	}
	printJSON("disponibilidad", results)

	plan := parsePlan(*planFlag, productIDs)
	planResult, err := planner.CreateProductionPlan(ctx, companyID, plan, dto.PlanOptionsDTO{
		AllowPartial: *partialFlag,
		PriorityMode: dto.PriorityBalanced,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("plan de producción")
	}
	printJSON("plan", planResult)

	suggestions, err := restock.GenerateRestockSuggestions(ctx, companyID)
	if err != nil {
		log.Fatal().Err(err).Msg("reabastecimiento")
	}
	printJSON("reabastecimiento", suggestions)

	if len(demoOrders) > 0 {
		scheduler := production.NewScheduleUseCase(productRepo, recipeRepo, log, nil)
		schedule, err := scheduler.GenerateProductionSchedule(ctx, companyID, demoOrders, cfg.Planner.HorizonDays)
		if err != nil {
			log.Fatal().Err(err).Msg("cronograma")
		}
		printJSON("cronograma", schedule)
	}
}

// parsePlan interpreta "id=qty,id=qty"; sin flag pide 1 unidad de cada producto.
func parsePlan(raw string, productIDs []string) map[string]int64 {
	plan := make(map[string]int64)
	if raw == "" {
		for _, id := range productIDs {
			plan[id] = 1
		}
		return plan
	}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		qty, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		plan[parts[0]] = qty
	}
	return plan
}

func printJSON(label string, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, label, ":", err)
		return
	}
	fmt.Printf("── %s ──\n%s\n", label, out)
}

type demoData struct {
	companyID  string
	productIDs []string
	orders     []entity.ProductionOrder
	materials  *memory.MaterialRepo
	products   *memory.ProductRepo
	recipes    *memory.RecipeRepo
}

// seedDemo arma el escenario de referencia: hamburguesa con pan (sin merma) y
// carne (10% de merma), stock 50/22 → máximo 20 unidades, cuello de botella carne.
func seedDemo() demoData {
	companyID := uuid.New().String()
	now := time.Now()

	materials := memory.NewMaterialRepository()
	products := memory.NewProductRepository()
	recipes := memory.NewRecipeRepository()

	bun := &entity.Material{
		ID: uuid.New().String(), CompanyID: companyID, SKU: "MAT-BUN", Name: "Pan de hamburguesa",
		Unit: entity.UnitPcs, StockQuantity: decimal.NewFromInt(50),
		ReorderLevel: decimal.NewFromInt(30), UnitCost: decimal.NewFromFloat(0.5),
		CreatedAt: now, UpdatedAt: now,
	}
	patty := &entity.Material{
		ID: uuid.New().String(), CompanyID: companyID, SKU: "MAT-PATTY", Name: "Carne para hamburguesa",
		Unit: entity.UnitPcs, StockQuantity: decimal.NewFromInt(22),
		ReorderLevel: decimal.NewFromInt(40), UnitCost: decimal.NewFromFloat(1.2),
		CreatedAt: now, UpdatedAt: now,
	}
	materials.Save(bun)
	materials.Save(patty)

	burger := &entity.Product{
		ID: uuid.New().String(), CompanyID: companyID, SKU: "PROD-BURGER", Name: "Hamburguesa clásica",
		InventoryManagementType: entity.InventoryBOM, CreatedAt: now, UpdatedAt: now,
	}
	products.Save(burger)

	recipe := &entity.Recipe{
		ID: uuid.New().String(), CompanyID: companyID, ProductID: burger.ID,
		Name: "Hamburguesa clásica v1", YieldQuantity: decimal.NewFromInt(1),
		YieldUnit: "pcs", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	_ = recipe.AddComponent(&entity.RecipeComponent{
		ID: uuid.New().String(), MaterialID: bun.ID, Material: bun,
		QuantityRequired: decimal.NewFromInt(1), WastePercentage: decimal.Zero,
	})
	_ = recipe.AddComponent(&entity.RecipeComponent{
		ID: uuid.New().String(), MaterialID: patty.ID, Material: patty,
		QuantityRequired: decimal.NewFromInt(1), WastePercentage: decimal.NewFromInt(10),
	})
	recipes.Save(recipe)

	// Dos órdenes que compiten por la carne: la urgente se programa, a la
	// tardía no le alcanza el libro mayor.
	orders := []entity.ProductionOrder{
		{ID: uuid.New().String(), ProductID: burger.ID, Quantity: 15, DueDate: now.AddDate(0, 0, 3)},
		{ID: uuid.New().String(), ProductID: burger.ID, Quantity: 15, DueDate: now.AddDate(0, 0, 9)},
	}

	return demoData{
		companyID:  companyID,
		productIDs: []string{burger.ID},
		orders:     orders,
		materials:  materials,
		products:   products,
		recipes:    recipes,
	}
}
