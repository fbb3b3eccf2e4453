package dto

type LoginInput struct {
	Email       string
	PhoneNumber string
	Password    string
}

type LoginOutput struct {
	Message string
}

type StatusOutput struct {
	LoggedIn bool
}
