package worker

import (
	"fmt"
	"log"
	"text_trans_api/config"
	"text_trans_api/pkg/tasks"

	"github.com/hibiken/asynq"
)

func Run() {
	log.Println("Starting the document translation worker...")

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: fmt.Sprintf("%s:%d", config.Cfg.Redis.Host, config.Cfg.Redis.Port), Password: config.Cfg.Redis.Password},
		asynq.Config{
			// Document jobs hold an LLM call per text node; keep the
			// worker narrow so one tenant cannot saturate the API quota.
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.DocumentTranslate, tasks.HandleDocumentTranslateTask)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
