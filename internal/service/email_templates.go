package service

import "fmt"

const (
	outcomeWon  = "won"
	outcomeLost = "lost"
	outcomeTie  = "tie"
)

func welcomeEmailTemplate(name, guidesURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Create your first habit and check it off every day to build a streak.

New here? The guides are at %s

Best,
The %s Team`, name, guidesURL, appName)

	return subject, body
}

func challengeInviteTemplate(opponentName, challengerName, challengeName string, durationDays int, url, appName string) (string, string) {
	subject := fmt.Sprintf("%s challenged you on %s", challengerName, appName)
	body := fmt.Sprintf(`Hi %s,

%s challenged you to a %d-day streak challenge: "%s".

Accept or decline it here:
%s

The longer streak at the end of the challenge wins.

Best,
The %s Team`, opponentName, challengerName, durationDays, challengeName, url, appName)

	return subject, body
}

func challengeAcceptedTemplate(challengerName, opponentName, challengeName, endDate, appName string) (string, string) {
	subject := fmt.Sprintf("%s accepted your challenge", opponentName)
	body := fmt.Sprintf(`Hi %s,

%s accepted "%s". The challenge starts today and ends on %s.

Good luck!

Best,
The %s Team`, challengerName, opponentName, challengeName, endDate, appName)

	return subject, body
}

func challengeResultTemplate(name, challengeName string, ownStreak, otherStreak int, outcome, appName string) (string, string) {
	var headline string
	switch outcome {
	case outcomeWon:
		headline = "You won!"
	case outcomeLost:
		headline = "You didn't win this time."
	default:
		headline = "It's a tie."
	}

	subject := fmt.Sprintf("Challenge finished: %s", challengeName)
	body := fmt.Sprintf(`Hi %s,

The challenge "%s" has ended. %s

Your streak: %d
Your opponent's streak: %d

Best,
The %s Team`, name, challengeName, headline, ownStreak, otherStreak, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account has been permanently deleted from %s.

All your data, including habits, entries, challenges and your avatar, has been removed.

If you change your mind, you're welcome to create a new account anytime.

Best,
The %s Team`, name, appName, appName)

	return subject, body
}
