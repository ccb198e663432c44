package forms

// User facing messages.
const (
	MsgInvalidCredentials  = "Identifiants invalides"
	MsgLoginFailed         = "Une erreur est survenue lors de la connexion"
	MsgGenericFailure      = "Une erreur est survenue. Veuillez réessayer."
	MsgSessionExpired      = "Votre session a expiré. Veuillez vous reconnecter."
	MsgInsufficientRights  = "Vous n'avez pas les droits nécessaires pour accéder à cette page."
	MsgUsernameRequired    = "Le nom d'utilisateur est requis"
	MsgPasswordRequired    = "Le mot de passe est requis"
	MsgPasswordTooShort    = "Le mot de passe doit contenir au moins 8 caractères"
	MsgConfirmRequired     = "La confirmation du mot de passe est requise"
	MsgPasswordsMismatch   = "Les mots de passe ne correspondent pas"
	MsgEmailRequired       = "L'email est requis"
	MsgEmailInvalid        = "Veuillez entrer un email valide"
	MsgResetTokenRequired  = "Le lien de réinitialisation est invalide ou incomplet"
	MsgResetRequestSent    = "Un email de récupération a été envoyé à votre adresse."
	MsgPasswordReset       = "Mot de passe réinitialisé avec succès"
	MsgPasswordChanged     = "Votre mot de passe a été modifié avec succès"
	MsgFirstPasswordNotice = "Pour garantir la sécurité de votre compte ADCSA, vous devez définir un nouveau mot de passe lors de votre première connexion." // nolint: lll
)
