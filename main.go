package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/Barbaracwx/telegram-sportsfinder/routes"
	"github.com/Barbaracwx/telegram-sportsfinder/services"
	"github.com/Barbaracwx/telegram-sportsfinder/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize DynamoDB client and store layer
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	profileStore := &services.DynamoProfileStore{Dynamo: dynamoService}
	matchStore := &services.DynamoMatchStore{Dynamo: dynamoService}
	log.Println("DynamoDB client initialized.")

	// Socket.IO push channel for the bot gateway
	socketServer := socket.NewSocketServer()
	notifier := &socket.PushNotifier{Server: socketServer}

	// Initialize Services
	userProfileService := &services.UserProfileService{Profiles: profileStore}
	matchService := &services.MatchService{Profiles: profileStore, Matches: matchStore, Notifier: notifier}
	lifecycleService := &services.LifecycleService{Profiles: profileStore, Matches: matchStore, Notifier: notifier}
	chatService := &services.ChatService{Profiles: profileStore, Matches: matchStore, Notifier: notifier}
	socket.BindChatRelay(socketServer, chatService)

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to SportsFinder")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterMatchRoutes(r, matchService, lifecycleService)
	routes.RegisterCallbackRoutes(r, matchService, lifecycleService)
	routes.RegisterChatRoutes(r, chatService)

	// Mount the Socket.IO endpoint
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket.IO server error: %v", err)
		}
	}()
	defer socketServer.Close()
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
