package main

import (
	"database/sql"
	"log"

	"github.com/dhiee1598/vdps-sfrms/app/config"
	"github.com/dhiee1598/vdps-sfrms/app/database"
)

func main() {
	log.Println("Starting manual migration...")

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	seedGradeLevels(db)
	seedStrands(db)

	log.Println("Manual migration completed successfully!")
}

func seedGradeLevels(db *sql.DB) {
	levels := []string{
		"NURSERY", "KINDER",
		"GRADE 1", "GRADE 2", "GRADE 3", "GRADE 4", "GRADE 5", "GRADE 6",
		"GRADE 7", "GRADE 8", "GRADE 9", "GRADE 10",
		"GRADE 11", "GRADE 12",
	}
	for _, name := range levels {
		if _, err := db.Exec(`INSERT INTO grade_levels (grade_level_name) VALUES ($1)
							  ON CONFLICT (grade_level_name) DO NOTHING`, name); err != nil {
			log.Printf("Error seeding grade level %s: %v", name, err)
		}
	}
	log.Println("Grade levels seeded")
}

func seedStrands(db *sql.DB) {
	strands := []string{"STEM", "ABM", "HUMSS", "GAS", "TVL-ICT", "TVL-HE"}
	for _, name := range strands {
		if _, err := db.Exec(`INSERT INTO strands (strand_name) VALUES ($1)
							  ON CONFLICT (strand_name) DO NOTHING`, name); err != nil {
			log.Printf("Error seeding strand %s: %v", name, err)
		}
	}
	log.Println("Strands seeded")
}
