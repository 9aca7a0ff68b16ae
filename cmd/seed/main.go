package main

import (
	"context"
	"log"
	"os"

	"github.com/emirhankarahan/flyticket/config"
	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/emirhankarahan/flyticket/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The 81 provinces of Turkey.
var cityNames = []string{
	"Adana", "Adıyaman", "Afyonkarahisar", "Ağrı", "Amasya", "Ankara",
	"Antalya", "Artvin", "Aydın", "Balıkesir", "Bilecik", "Bingöl", "Bitlis",
	"Bolu", "Burdur", "Bursa", "Çanakkale", "Çankırı", "Çorum", "Denizli",
	"Diyarbakır", "Edirne", "Elazığ", "Erzincan", "Erzurum", "Eskişehir",
	"Gaziantep", "Giresun", "Gümüşhane", "Hakkâri", "Hatay", "Isparta",
	"Mersin", "İstanbul", "İzmir", "Kars", "Kastamonu", "Kayseri",
	"Kırklareli", "Kırşehir", "Kocaeli", "Konya", "Kütahya", "Malatya",
	"Manisa", "Kahramanmaraş", "Mardin", "Muğla", "Muş", "Nevşehir", "Niğde",
	"Ordu", "Rize", "Sakarya", "Samsun", "Siirt", "Sinop", "Sivas",
	"Tekirdağ", "Tokat", "Trabzon", "Tunceli", "Şanlıurfa", "Uşak", "Van",
	"Yozgat", "Zonguldak", "Aksaray", "Bayburt", "Karaman", "Kırıkkale",
	"Batman", "Şırnak", "Bartın", "Ardahan", "Iğdır", "Yalova", "Karabük",
	"Kilis", "Düzce",
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	repo := repository.NewCityRepository(pool)

	// Reseed from scratch so reruns cannot duplicate names.
	if err := repo.DeleteAll(ctx); err != nil {
		log.Fatalf("clear cities: %v", err)
	}

	for _, name := range cityNames {
		city := domain.City{ID: uuid.NewString(), Name: name}
		if err := repo.Create(ctx, city); err != nil {
			log.Fatalf("insert %q: %v", name, err)
		}
		log.Printf("inserted %q with city_id=%s", name, city.ID)
	}

	log.Printf("all %d cities seeded", len(cityNames))
}
