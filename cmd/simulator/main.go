package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:3000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "flow":
		flowCmd(apiURL)
	case "populate":
		populateCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Postboard Simulator - Development tool for exercising the API

USAGE:
  simulator <command> [options]

COMMANDS:
  flow      Register two users and walk through the auth and ownership flow
  populate  Create users, posts and comments
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:3000)

EXAMPLES:
  # Check register, login, posting, refresh and logout end to end
  simulator flow

  # Seed 5 users with 3 posts each, every post commented on by every user
  simulator populate --users=5 --posts=3`)
}

func fail(step string, err error) {
	fmt.Printf("FAILED\n  %s: %v\n", step, err)
	os.Exit(1)
}

func flowCmd(apiURL string) {
	client := NewAPIClient(apiURL)

	fmt.Println("=== Postboard Simulator: Flow ===")
	fmt.Println()

	fmt.Print("Registering users... ")
	alice, err := client.RegisterUser("alice")
	if err != nil {
		fail("register alice", err)
	}
	bob, err := client.RegisterUser("bob")
	if err != nil {
		fail("register bob", err)
	}
	fmt.Printf("OK (%s, %s)\n", alice.Username, bob.Username)

	fmt.Print("Logging in... ")
	aliceTokens, err := client.Login(alice.Email)
	if err != nil {
		fail("login alice", err)
	}
	bobTokens, err := client.Login(bob.Email)
	if err != nil {
		fail("login bob", err)
	}
	fmt.Println("OK")

	fmt.Print("Creating post... ")
	post, err := client.CreatePost(aliceTokens.AccessToken, "Hello from the simulator")
	if err != nil {
		fail("create post", err)
	}
	if post.Sender != alice.ID {
		fail("create post", fmt.Errorf("sender %s, want %s", post.Sender, alice.ID))
	}
	fmt.Printf("OK (%s)\n", post.ID)

	fmt.Print("Commenting as second user... ")
	if _, err := client.CreateComment(bobTokens.AccessToken, post.ID, "Nice post"); err != nil {
		fail("create comment", err)
	}
	comments, err := client.ListComments(aliceTokens.AccessToken, post.ID)
	if err != nil {
		fail("list comments", err)
	}
	fmt.Printf("OK (%d comment(s))\n", len(comments))

	fmt.Print("Checking ownership... ")
	status, err := client.UpdatePost(bobTokens.AccessToken, post.ID, "hijacked")
	if err != nil {
		fail("update post", err)
	}
	if status != http.StatusForbidden {
		fail("update post", fmt.Errorf("non-owner got status %d, want %d", status, http.StatusForbidden))
	}
	fmt.Println("OK (non-owner rejected)")

	fmt.Print("Refreshing access token... ")
	accessToken, err := client.Refresh(aliceTokens.RefreshToken)
	if err != nil {
		fail("refresh", err)
	}
	if _, err := client.ListPosts(accessToken, alice.ID); err != nil {
		fail("list posts with refreshed token", err)
	}
	fmt.Println("OK")

	fmt.Print("Logging out... ")
	if err := client.Logout(aliceTokens.RefreshToken); err != nil {
		fail("logout", err)
	}
	if _, err := client.Refresh(aliceTokens.RefreshToken); err == nil {
		fail("refresh after logout", fmt.Errorf("revoked token was accepted"))
	}
	fmt.Println("OK (revoked token rejected)")

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("  FLOW COMPLETE")
	fmt.Println("=========================================")
}

func populateCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("populate", flag.ExitOnError)
	users := fs.Int("users", 3, "Number of users to create")
	posts := fs.Int("posts", 2, "Number of posts per user")
	fs.Parse(args)

	if *users < 1 || *posts < 0 {
		fmt.Println("Error: --users must be at least 1 and --posts must not be negative")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Postboard Simulator: Populate ===")
	fmt.Println()

	tokens := make([]string, 0, *users)
	for i := 0; i < *users; i++ {
		user, err := client.RegisterUser(fmt.Sprintf("user%d", i+1))
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED to create user: %v\n", i+1, *users, err)
			os.Exit(1)
		}
		pair, err := client.Login(user.Email)
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED to log in: %v\n", i+1, *users, err)
			os.Exit(1)
		}
		tokens = append(tokens, pair.AccessToken)
		fmt.Printf("  [%d/%d] %s created\n", i+1, *users, user.Username)
	}

	var postCount, commentCount int
	for i, token := range tokens {
		for p := 0; p < *posts; p++ {
			post, err := client.CreatePost(token, fmt.Sprintf("Post %d from user %d", p+1, i+1))
			if err != nil {
				fmt.Printf("FAILED to create post: %v\n", err)
				os.Exit(1)
			}
			postCount++

			for j, commenter := range tokens {
				if _, err := client.CreateComment(commenter, post.ID, fmt.Sprintf("Comment from user %d", j+1)); err != nil {
					fmt.Printf("FAILED to create comment: %v\n", err)
					os.Exit(1)
				}
				commentCount++
			}
		}
	}

	fmt.Println()
	fmt.Printf("Created %d users, %d posts, %d comments\n", len(tokens), postCount, commentCount)
}
