package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"luzeouro/internal/domain"
)

// ProductWriter is satisfied by the product repository.
type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type productSeed struct {
	Name     string
	Price    domain.Money
	Material string
	Category string
	Photo    string
}

// namespace keeps seeded product ids stable across runs.
var namespace = uuid.MustParse("6f1c8f4e-3b9a-4d7e-9a51-2c0de5a1b7f0")

var catalog = []productSeed{
	{Name: "Colar Ponto de Luz", Price: 45990, Material: "Ouro", Category: "colares", Photo: "colares/ponto-de-luz.jpg"},
	{Name: "Colar Veneziana", Price: 129900, Material: "Ouro", Category: "colares", Photo: "colares/veneziana.jpg"},
	{Name: "Colar Coração", Price: 18990, Material: "Prata", Category: "colares", Photo: "colares/coracao.jpg"},
	{Name: "Anel Solitário", Price: 89990, Material: "Ouro", Category: "aneis", Photo: "aneis/solitario.jpg"},
	{Name: "Anel Aparador", Price: 32000, Material: "Prata", Category: "aneis", Photo: "aneis/aparador.jpg"},
	{Name: "Aliança Clássica", Price: 219000, Material: "Ouro", Category: "aneis", Photo: "aneis/alianca.jpg"},
	{Name: "Brinco Argola", Price: 27990, Material: "Prata", Category: "brincos", Photo: "brincos/argola.jpg"},
	{Name: "Brinco Gota", Price: 115000, Material: "Ouro", Category: "brincos", Photo: "brincos/gota.jpg"},
	{Name: "Relógio Dourado", Price: 149900, Material: "Aço", Category: "relogios", Photo: "relogios/dourado.jpg"},
	{Name: "Relógio Minimal", Price: 69900, Material: "Aço", Category: "relogios", Photo: "relogios/minimal.jpg"},
	{Name: "Pulseira Riviera", Price: 159000, Material: "Ouro", Category: "pulseiras", Photo: "pulseiras/riviera.jpg"},
	{Name: "Pulseira Berloques", Price: 39990, Material: "Prata", Category: "pulseiras", Photo: "pulseiras/berloques.jpg"},
}

// Apply upserts the demo catalog. Ids derive from product names, so
// re-running updates rows instead of duplicating them.
func Apply(ctx context.Context, w ProductWriter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, s := range catalog {
		p := domain.Product{
			ID:          productID(s.Name),
			Name:        s.Name,
			Price:       s.Price,
			Material:    s.Material,
			CategoryKey: s.Category,
			PhotoURL:    s.Photo,
		}
		if _, err := w.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", s.Name, err)
		}
	}
	logger.Info("seeded catalog", zap.Int("products", len(catalog)))
	return nil
}

func productID(name string) string {
	return uuid.NewSHA1(namespace, []byte(name)).String()
}
