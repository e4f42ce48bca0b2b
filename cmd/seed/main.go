package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/smallie/smallie/internal/adapters/repository/postgres"
	"github.com/smallie/smallie/internal/config"
	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/schedule"
	"github.com/smallie/smallie/internal/core/services"
)

// The launch roster for the show. Vote counts start at zero; tallies only
// move through the payment paths.
var roster = []domain.Contestant{
	{ID: "1", Name: "Adebola Johnson", Bio: "Content creator and aspiring actor with a passion for storytelling.", PhotoURL: "https://images.unsplash.com/photo-1522327646852-4e28586a40dd"},
	{ID: "2", Name: "Chioma Okafor", Bio: "Fashion designer and lifestyle vlogger sharing Nigerian culture.", PhotoURL: "https://images.unsplash.com/photo-1659540517934-cba43fc64ded"},
	{ID: "3", Name: "Emeka Nwosu", Bio: "Music producer who loves to create fusion of afrobeats and jazz.", PhotoURL: "https://images.unsplash.com/photo-1589707181684-24a34853641d"},
	{ID: "4", Name: "Folake Ade", Bio: "Dancer and choreographer with unique Afro-contemporary moves.", PhotoURL: "https://images.unsplash.com/photo-1659540517163-e9a29f4d1251"},
	{ID: "5", Name: "Tunde Bakare", Bio: "Tech enthusiast and gaming streamer building a Nigerian gaming community.", PhotoURL: "https://images.unsplash.com/photo-1495434942214-9b525bba74e9"},
	{ID: "6", Name: "Ngozi Eze", Bio: "Makeup artist and beauty influencer creating unique Nigerian looks.", PhotoURL: "https://images.unsplash.com/photo-1523365280197-f1783db9fe62"},
	{ID: "7", Name: "Ibrahim Yusuf", Bio: "Stand-up comedian bringing laughter and social commentary.", PhotoURL: "https://images.unsplash.com/photo-1528820184586-dd0d858b7254"},
	{ID: "8", Name: "Amara Obi", Bio: "Culinary enthusiast showcasing modern Nigerian cuisine.", PhotoURL: "https://images.unsplash.com/photo-1632215861513-130b66fe97f4", Eliminated: true},
	{ID: "9", Name: "Dayo Adeleke", Bio: "Fitness trainer promoting healthy living with African exercises.", PhotoURL: "https://images.unsplash.com/photo-1543234723-b70b104d8e25", Eliminated: true},
	{ID: "10", Name: "Fatima Bello", Bio: "Traditional storyteller bringing Nigerian folklore to modern audiences.", PhotoURL: "https://images.unsplash.com/photo-1539414785349-55cfff23f5b9"},
}

func main() {
	skipRoster := flag.Bool("skip-roster", false, "Seed only the daily tasks")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	taskRepo := postgres.NewTaskRepository(db)
	for _, task := range services.StaticTasks(schedule.Default()) {
		task := task
		if err := taskRepo.Save(ctx, &task); err != nil {
			log.Fatalf("Error seeding task for day %d: %v", task.Day, err)
		}
	}
	log.Println("Daily tasks seeded.")

	if *skipRoster {
		return
	}

	for _, c := range roster {
		if err := upsertContestant(ctx, db, c); err != nil {
			log.Fatalf("Error seeding contestant %s: %v", c.ID, err)
		}
	}
	log.Printf("Seeded %d contestants.", len(roster))
}

// upsertContestant inserts the contestant or refreshes profile fields,
// deliberately leaving an existing tally untouched.
func upsertContestant(ctx context.Context, db *sql.DB, c domain.Contestant) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO contestants (id, name, bio, photo_url, eliminated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			bio = EXCLUDED.bio,
			photo_url = EXCLUDED.photo_url,
			eliminated = EXCLUDED.eliminated`,
		c.ID, c.Name, c.Bio, c.PhotoURL, c.Eliminated)
	return err
}
